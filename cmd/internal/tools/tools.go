package tools

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/nathanhack/ldpc/benchmarking"
	"github.com/nathanhack/ldpc/config"
	"github.com/nathanhack/ldpc/gf2"
	"github.com/nathanhack/ldpc/linearblock"
	mat "github.com/nathanhack/sparsemat"
	"golang.org/x/exp/slices"
)

//Profile is the configuration loaded by the root command before any tool runs.
var Profile = config.Default()

type SimulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[float64]benchmarking.Stats
}
type simulationStats struct {
	TypeInfo string
	ECCInfo  string
	Stats    map[string]benchmarking.Stats
}

func (s *SimulationStats) MarshalJSON() ([]byte, error) {
	ss := simulationStats{
		TypeInfo: s.TypeInfo,
		ECCInfo:  s.ECCInfo,
		Stats:    map[string]benchmarking.Stats{},
	}

	for f, stat := range s.Stats {
		ss.Stats[fmt.Sprintf("%v", f)] = stat
	}

	return json.Marshal(ss)
}

func (s *SimulationStats) UnmarshalJSON(bytes []byte) error {
	var ss simulationStats

	err := json.Unmarshal(bytes, &ss)
	if err != nil {
		return err
	}

	s.TypeInfo = ss.TypeInfo
	s.ECCInfo = ss.ECCInfo
	s.Stats = map[float64]benchmarking.Stats{}

	for fs, stat := range ss.Stats {
		f, err := strconv.ParseFloat(fs, 64)
		if err != nil {
			return err
		}
		s.Stats[f] = stat
	}
	return nil
}

//Md5Sum fingerprints H so results files can't be mixed between codes.
func Md5Sum(H mat.SparseMat) string {
	return fmt.Sprintf("%x", md5.Sum(gf2.Bytes(H)))
}

func LoadLinearBlockECC(filepath string) (*linearblock.LinearBlock, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, fmt.Errorf("the ECC_JSON_FILE must exist")
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var ecc linearblock.LinearBlock
	err = json.Unmarshal(bs, &ecc)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}
	if rows, cols := ecc.H.Dims(); rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%v does not hold an H matrix", filepath)
	}

	return &ecc, nil
}

func SaveLinearBlockECC(filepath string, ecc *linearblock.LinearBlock) error {
	bs, err := json.Marshal(ecc)
	if err != nil {
		return fmt.Errorf("unable to serialize the ECC: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("unable to write file %v: %w", filepath, err)
	}
	return nil
}

//LoadResults returns nil,nil when filepath doesn't exist yet.
func LoadResults(filepath string) (*SimulationStats, error) {
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return nil, nil
	}

	bs, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %w", filepath, err)
	}

	var stat SimulationStats
	err = json.Unmarshal(bs, &stat)
	if err != nil {
		return nil, fmt.Errorf("error while unmarshalling file %v: %w", filepath, err)
	}
	return &stat, nil
}

func SaveResults(filepath string, data *SimulationStats) error {
	bs, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error serializing results: %w", err)
	}

	err = os.WriteFile(filepath, bs, 0644)
	if err != nil {
		return fmt.Errorf("error while saving results to %v: %w", filepath, err)
	}
	return nil
}

//ReadFrames reads a file of equal length one byte per bit frames.
func ReadFrames(filepath string, frameLen int) (mat.SparseMat, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if frameLen <= 0 || info.Size()%int64(frameLen) != 0 {
		return nil, fmt.Errorf("%w: %v holds %v bytes which is not a multiple of the frame length %v", gf2.ErrDimensionMismatch, filepath, info.Size(), frameLen)
	}

	return gf2.ReadBinary(f, int(info.Size()/int64(frameLen)), frameLen)
}

func WriteFrames(filepath string, frames mat.SparseMat) error {
	f, err := os.Create(filepath)
	if err != nil {
		return err
	}
	if err := gf2.WriteBinary(f, frames); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

//Layout pads ecc with the flag values, falling back to the profile's alignment when a flag is 0.
func Layout(ecc *linearblock.LinearBlock, rowMultiple, colMultiple uint) (*linearblock.Layout, error) {
	rows, cols := int(rowMultiple), int(colMultiple)
	if rows == 0 {
		rows = Profile.Alignment.RowMultiple
	}
	if cols == 0 {
		cols = Profile.Alignment.ColMultiple
	}
	return linearblock.HardwareLayout(ecc, rows, cols)
}

//MinInt is the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

//LoadAllResults loads every results file along with the sorted union of their probabilities.
func LoadAllResults(files []string) ([]*SimulationStats, []float64, error) {
	if len(files) < 1 {
		return nil, nil, fmt.Errorf("requires at least one RESULTS_JSON")
	}

	stats := make([]*SimulationStats, len(files))
	seen := make(map[float64]bool)
	probabilities := make([]float64, 0)
	for i, resultFile := range files {
		s, err := LoadResults(resultFile)
		if err != nil {
			return nil, nil, err
		}
		if s == nil {
			return nil, nil, fmt.Errorf("results file %v does not exist", resultFile)
		}
		stats[i] = s
		for p := range s.Stats {
			if !seen[p] {
				seen[p] = true
				probabilities = append(probabilities, p)
			}
		}
	}
	slices.Sort(probabilities)
	return stats, probabilities, nil
}

//Selected returns the mean error picked by the message/parity flags, codeword error otherwise.
func Selected(stats benchmarking.Stats, messageError, parityError bool) float64 {
	switch {
	case messageError:
		return stats.ChannelMessageError.Mean
	case parityError:
		return stats.ChannelParityError.Mean
	default:
		return stats.ChannelCodewordError.Mean
	}
}
