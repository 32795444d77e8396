package bec

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	"github.com/nathanhack/ldpc/linearblock/messagepassing/bec"
	mat "github.com/nathanhack/sparsemat"
)

//Options shared by every BEC simulator command.
type Options struct {
	Trials           uint
	ErrorProbability []float64
	Threads          uint
}

//CorrectionFactory makes the correction function for ecc, called once per simulation.
type CorrectionFactory func(ecc *linearblock.LinearBlock) benchmarking.BinaryErasureChannelCorrection

func RunBEC(ctx context.Context,
	l *linearblock.LinearBlock,
	percentage float64, trials, threads int,
	correctionAlg benchmarking.BinaryErasureChannelCorrection,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgressBar bool) benchmarking.Stats {

	createMessage := func(trial int) mat.SparseVector {
		return benchmarking.RandomMessage(l.MessageLength())
	}

	encode := func(message mat.SparseVector) (codeword []bec.ErasureBit) {
		return l.EncodeBE(message)
	}

	channel := func(originalCodeword []bec.ErasureBit) (erroredCodeword []bec.ErasureBit) {
		count := int(percentage * float64(len(originalCodeword)))
		return benchmarking.RandomEraseCount(originalCodeword, count)
	}

	metrics := func(originalMessage mat.SparseVector, originalCodeword, fixedChannelInducedCodeword []bec.ErasureBit) (percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64) {
		codewordErrors := benchmarking.ErasedCount(fixedChannelInducedCodeword)
		message := l.DecodeBE(fixedChannelInducedCodeword)
		messageErrors := benchmarking.ErasedCount(message)
		parityErrors := codewordErrors - messageErrors

		percentFixedCodewordErrors = float64(codewordErrors) / float64(l.CodewordLength())
		percentFixedMessageErrors = float64(messageErrors) / float64(l.MessageLength())
		percentFixedParityErrors = float64(parityErrors) / float64(l.CodewordLength()-l.MessageLength())
		return
	}

	return benchmarking.BenchmarkBECContinueStats(ctx, trials, threads, createMessage, encode, channel, correctionAlg, metrics, checkpoints, previousStats, showProgressBar)
}

//Simulate runs the erasure simulation for ECC_JSON_FILE (args[0]) and stores the results
// in RESULT_JSON (args[1]), continuing any results already there.
func Simulate(ctx context.Context, args []string, typeInfo string, opts Options, factory CorrectionFactory) error {
	if len(args) != 2 {
		return fmt.Errorf("requires both ECC_JSON_FILE RESULT_JSON")
	}

	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		return err
	}
	if ecc.Processing == nil {
		return fmt.Errorf("%v has no generator matrix", args[0])
	}

	data, err := tools.LoadResults(args[1])
	if err != nil {
		return err
	}
	if data == nil {
		data = &tools.SimulationStats{
			TypeInfo: typeInfo,
			ECCInfo:  tools.Md5Sum(ecc.H),
			Stats:    make(map[float64]benchmarking.Stats),
		}
	}
	if data.TypeInfo != typeInfo {
		return fmt.Errorf("results loaded do not match the same type expected %v but found %v", typeInfo, data.TypeInfo)
	}
	if data.ECCInfo != tools.Md5Sum(ecc.H) {
		return fmt.Errorf("results loaded do not match the ECC")
	}

	correctionAlg := factory(ecc)
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(opts.Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trialsPerIter := numberOfThread * 10
	bar := pb.StartNew(int(opts.Trials) * len(opts.ErrorProbability))
trialLoops:
	for t := trialsPerIter; t < int(opts.Trials)+trialsPerIter; t += trialsPerIter {
		select {
		case <-ctx.Done():
			break trialLoops
		default:
		}

		for _, p := range opts.ErrorProbability {
			probability := p
			checkpoint := func(stats benchmarking.Stats) {
				checkpointMux.Lock()
				defer checkpointMux.Unlock()

				data.Stats[probability] = stats

				if checkpointCount%trialsPerIter == 0 {
					err := tools.SaveResults(args[1], data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			data.Stats[probability] = RunBEC(ctx, ecc, probability, tools.MinInt(t, int(opts.Trials)), numberOfThread, correctionAlg, data.Stats[probability], checkpoint, false)
			bar.Add(trialsPerIter)
		}
	}
	bar.Finish()

	return tools.SaveResults(args[1], data)
}
