package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nathanhack/ldpc/cmd/internal/tools"
	mat "github.com/nathanhack/sparsemat"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	RowMultiple uint
	ColMultiple uint
)

//Shape describes the exported binaries, it is written next to them as layout.yaml.
type Shape struct {
	K       int `yaml:"k"`
	M       int `yaml:"m"`
	N       int `yaml:"n"`
	KPadded int `yaml:"k_padded"`
	MPadded int `yaml:"m_padded"`
	NPadded int `yaml:"n_padded"`
}

var ExportRun = func(cmd *cobra.Command, args []string) error {
	ecc, err := tools.LoadLinearBlockECC(args[0])
	if err != nil {
		return err
	}

	layout, err := tools.Layout(ecc, RowMultiple, ColMultiple)
	if err != nil {
		return err
	}
	if !layout.Validate() {
		return fmt.Errorf("padded generator matrix failed G*H.T=0")
	}

	dir := args[1]
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	matrices := []struct {
		name string
		m    mat.SparseMat
	}{
		{"G.bin", layout.G},
		{"H.bin", layout.H},
		{"HT.bin", layout.HT},
	}
	for _, x := range matrices {
		if err := tools.WriteFrames(filepath.Join(dir, x.name), x.m); err != nil {
			return fmt.Errorf("unable to write %v: %w", x.name, err)
		}
	}

	shape := Shape{
		K: layout.K, M: layout.M, N: layout.N,
		KPadded: layout.KPadded, MPadded: layout.MPadded, NPadded: layout.NPadded,
	}
	bs, err := yaml.Marshal(&shape)
	if err != nil {
		return err
	}
	err = os.WriteFile(filepath.Join(dir, "layout.yaml"), bs, 0644)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"dir": dir, "k": shape.KPadded, "m": shape.MPadded, "n": shape.NPadded}).Info("exported")
	return nil
}
