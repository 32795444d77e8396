package bsc

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/cmd/internal/tools"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
)

const bitLimit = 64

//Options shared by every BSC simulator command.
type Options struct {
	Trials           uint
	ErrorProbability []float64
	Threads          uint
}

//CorrectionFactory makes the correction function for ecc, called once per simulation.
type CorrectionFactory func(ecc *linearblock.LinearBlock) benchmarking.BinarySymmetricChannelCorrection

func RunBSC(ctx context.Context,
	l *linearblock.LinearBlock,
	crossoverProbability float64, trials, threads int,
	correctionAlg benchmarking.BinarySymmetricChannelCorrection,
	previousStats benchmarking.Stats,
	checkpoints benchmarking.Checkpoints,
	showProgress bool) benchmarking.Stats {
	messageHistory := make(map[string]bool)
	messageHistoryMux := sync.Mutex{}
	messageHistoryMax := math.Pow(2, float64(l.MessageLength()))

	//small messages are kept unique until every message has been used
	createMessage := func(trial int) mat.SparseVector {
		messageHistoryMux.Lock()
		defer messageHistoryMux.Unlock()

		if float64(len(messageHistory)) >= messageHistoryMax {
			messageHistory = make(map[string]bool)
		}
		message := benchmarking.RandomMessage(l.MessageLength())
		if message.Len() >= bitLimit {
			return message
		}
		for messageHistory[message.String()] {
			message = benchmarking.RandomMessage(l.MessageLength())
		}
		messageHistory[message.String()] = true
		return message
	}

	encode := func(message mat.SparseVector) (codeword mat.SparseVector) {
		return l.Encode(message)
	}

	channel := func(originalCodeword mat.SparseVector) (erroredCodeword mat.SparseVector) {
		count := int(crossoverProbability * float64(originalCodeword.Len()))
		return benchmarking.RandomFlipBitCount(originalCodeword, count)
	}

	metrics := func(originalMessage, originalCodeword, fixedChannelInducedCodeword mat.SparseVector) (percentFixedCodewordErrors, percentFixedMessageErrors, percentFixedParityErrors float64) {
		codewordErrors := originalCodeword.HammingDistance(fixedChannelInducedCodeword)
		message := l.Decode(fixedChannelInducedCodeword)
		messageErrors := message.HammingDistance(originalMessage)
		parityErrors := codewordErrors - messageErrors

		percentFixedCodewordErrors = float64(codewordErrors) / float64(l.CodewordLength())
		percentFixedMessageErrors = float64(messageErrors) / float64(l.MessageLength())
		percentFixedParityErrors = float64(parityErrors) / float64(l.CodewordLength()-l.MessageLength())
		return
	}

	return benchmarking.BenchmarkBSCContinueStats(ctx, trials, threads, createMessage, encode, channel, correctionAlg, metrics, checkpoints, previousStats, showProgress)
}

//Simulate runs the BSC simulation for ECC_JSON_FILE (args[0]) and stores the results in
// RESULT_JSON (args[1]), continuing any results already there.
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

	//next we see if the RESULT_JSON exists if so we load it and validate we're running it against the right thing
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

	runSimulation(ctx, data, ecc, args[1], opts, factory(ecc))

	return tools.SaveResults(args[1], data)
}

func runSimulation(ctx context.Context, data *tools.SimulationStats, ecc *linearblock.LinearBlock, outputFilename string, opts Options, correctionAlg benchmarking.BinarySymmetricChannelCorrection) {
	checkpointMux := sync.Mutex{}
	checkpointCount := 0

	numberOfThread := int(opts.Threads)
	if numberOfThread == 0 {
		numberOfThread = runtime.NumCPU()
	}

	trialsPerIter := numberOfThread * 10
	bar := pb.StartNew(int(opts.Trials) * len(opts.ErrorProbability))
	defer bar.Finish()
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
					err := tools.SaveResults(outputFilename, data)
					if err != nil {
						fmt.Println(err)
					}
				}
				checkpointCount++
			}
			data.Stats[probability] = RunBSC(ctx, ecc, probability, tools.MinInt(t, int(opts.Trials)), numberOfThread, correctionAlg, data.Stats[probability], checkpoint, false)
			bar.Add(trialsPerIter)
		}
	}
}
