package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

const coffeeTrain = `@problemname Coffee
@timestamps false
@univariate true
@classlabel true 0 1
@data
1,2,3:0
4,5,6:1
`

const coffeeTest = `@problemname Coffee
@timestamps false
@univariate true
@classlabel true 0 1
@data
7,8,9:0
`

const brokenTS = `@problemname Broken
@timestamps false
`

// writeZip builds a test archive with the given member contents.
func writeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datasets.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvert(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"Coffee/Coffee_TRAIN.ts": coffeeTrain,
		"Coffee/Coffee_TEST.ts":  coffeeTest,
		"Beef/Beef_TRAIN.ts":     coffeeTrain, // not in include list
		"Coffee/README.md":       "not a dataset",
	})
	resultDir := filepath.Join(t.TempDir(), "npy")

	report, err := Convert(archive, resultDir, Options{
		Format:      FormatTS,
		Include:     []string{"Coffee"},
		Sentinel:    -1,
		LabelColumn: true,
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	if len(report.Failed) != 0 {
		t.Fatalf("Failed = %v, want none", report.Failed)
	}
	if len(report.Written) != 2 {
		t.Fatalf("Written = %v, want 2 files", report.Written)
	}
	for _, name := range []string{"Coffee_TRAIN.npy", "Coffee_TEST.npy"} {
		if _, err := os.Stat(filepath.Join(resultDir, name)); err != nil {
			t.Errorf("expected output %s: %v", name, err)
		}
	}
	if report.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", report.Skipped)
	}
}

func TestConvert_SeparateLabelArray(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"Coffee_TRAIN.ts": coffeeTrain,
	})
	resultDir := filepath.Join(t.TempDir(), "npy")

	report, err := Convert(archive, resultDir, Options{
		Format:  FormatTS,
		Include: []string{"Coffee"},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(report.Written) != 2 {
		t.Fatalf("Written = %v, want data + labels", report.Written)
	}
	if _, err := os.Stat(filepath.Join(resultDir, "Coffee_TRAIN_labels.npy")); err != nil {
		t.Errorf("expected separate label array: %v", err)
	}
}

func TestConvert_ReportsUnconvertibleMembers(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"Broken_TRAIN.ts": brokenTS,
		"Coffee_TRAIN.ts": coffeeTrain,
	})
	resultDir := filepath.Join(t.TempDir(), "npy")

	report, err := Convert(archive, resultDir, Options{
		Format:  FormatTS,
		Include: []string{"Broken", "Coffee"},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(report.Failed) != 1 {
		t.Fatalf("Failed = %v, want exactly the broken member", report.Failed)
	}
	if report.Failed[0].Member != "Broken_TRAIN.ts" {
		t.Errorf("failed member = %q, want Broken_TRAIN.ts", report.Failed[0].Member)
	}
	// the good member still converts
	if _, err := os.Stat(filepath.Join(resultDir, "Coffee_TRAIN.npy")); err != nil {
		t.Errorf("expected Coffee_TRAIN.npy despite other failure: %v", err)
	}
}

func TestConvert_ARFF(t *testing.T) {
	archive := writeZip(t, map[string]string{
		"Coffee_TRAIN.arff": `@relation Coffee
@attribute att0 numeric
@attribute target {0,1}
@data
1.0,0
2.0,1
`,
	})
	resultDir := filepath.Join(t.TempDir(), "npy")

	report, err := Convert(archive, resultDir, Options{
		Format:  FormatARFF,
		Include: []string{"Coffee"},
	})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(report.Written) != 1 {
		t.Fatalf("Written = %v, want 1 file", report.Written)
	}
}

func TestConvert_MissingArchive(t *testing.T) {
	if _, err := Convert(filepath.Join(t.TempDir(), "nope.zip"), t.TempDir(), Options{Format: FormatTS}); err == nil {
		t.Fatal("Convert() succeeded on a missing archive, want error")
	}
}
