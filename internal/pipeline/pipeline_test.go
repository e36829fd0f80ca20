package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/webpress/internal/config"
	"github.com/backmassage/webpress/internal/logging"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "photo.jpg")
	touch(t, dir, "scan.tiff")
	touch(t, dir, "icon.png")
	touch(t, dir, "notes.txt")
	touch(t, dir, "song.mp3")
	touch(t, dir, "already.webp")

	files, err := Discover(dir, false)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"icon.png", "photo.jpg", "scan.tiff"}
	got := basenames(files)
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_AllImageExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".gif"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.mkv")

	files, err := Discover(dir, false)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != len(exts) {
		t.Errorf("got %d files, want %d", len(files), len(exts))
	}
}

func TestDiscover_NonRecursiveSkipsSubdirs(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "top.jpg")
	os.MkdirAll(filepath.Join(dir, "nested"), 0o755)
	touch(t, filepath.Join(dir, "nested"), "deep.jpg")

	files, err := Discover(dir, false)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "top.jpg" {
		t.Errorf("got %v, want only top.jpg", basenames(files))
	}
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "a", "deep"), 0o755)
	os.MkdirAll(filepath.Join(dir, "b"), 0o755)
	touch(t, filepath.Join(dir, "b"), "last.png")
	touch(t, filepath.Join(dir, "a", "deep"), "first.png")
	touch(t, dir, "middle.jpg")

	files, err := Discover(dir, true)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i] < files[i-1] {
			t.Errorf("not sorted: %q before %q", files[i-1], files[i])
		}
	}
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "PHOTO.JPG")
	touch(t, dir, "Scan.TiFf")

	files, err := Discover(dir, false)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2 (case-insensitive ext matching)", len(files))
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	files, err := Discover(t.TempDir(), true)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestDiscover_DirectoriesNeverReturned(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "folder.jpg"), 0o755)
	touch(t, dir, "real.jpg")

	files, err := Discover(dir, true)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "real.jpg" {
		t.Errorf("got %v, want only real.jpg", basenames(files))
	}
}

// --- RunStats tests ---

func TestRunStats_AverageTime(t *testing.T) {
	s := RunStats{Converted: 4, TotalTime: 2000000000}
	if got := s.AverageTime(); got.Milliseconds() != 500 {
		t.Errorf("AverageTime: got %v, want 500ms", got)
	}

	empty := RunStats{}
	if got := empty.AverageTime(); got != 0 {
		t.Errorf("AverageTime with no conversions: got %v, want 0", got)
	}
}

// --- Convert tests ---

func TestConvert_SiblingOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	writeTestPNG(t, input, 16, 16)

	cfg, log, buf := testSetup(t, dir)
	conv := NewConverter(cfg, log, buf)

	res, err := conv.Convert(input, "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.OutputPath != filepath.Join(dir, "photo.webp") {
		t.Errorf("OutputPath: got %q", res.OutputPath)
	}
	if res.CompressedSize <= 0 || res.OriginalSize <= 0 {
		t.Errorf("sizes not recorded: %+v", res)
	}
	if !strings.Contains(buf.String(), "Converted: photo.png") {
		t.Errorf("report block missing:\n%s", buf.String())
	}
}

func TestConvert_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	writeTestPNG(t, input, 16, 16)
	explicit := filepath.Join(dir, "renamed.webp")

	cfg, log, buf := testSetup(t, dir)
	conv := NewConverter(cfg, log, buf)

	res, err := conv.Convert(input, explicit)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if res.OutputPath != explicit {
		t.Errorf("OutputPath: got %q, want %q", res.OutputPath, explicit)
	}
	if _, err := os.Stat(explicit); err != nil {
		t.Errorf("explicit output not written: %v", err)
	}
}

func TestConvert_CreatesOutputFolder(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "photo.png")
	writeTestPNG(t, input, 16, 16)

	cfg, log, buf := testSetup(t, dir)
	cfg.OutputFolder = filepath.Join(dir, "converted", "webp")
	conv := NewConverter(cfg, log, buf)

	res, err := conv.Convert(input, "")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	want := filepath.Join(cfg.OutputFolder, "photo.webp")
	if res.OutputPath != want {
		t.Errorf("OutputPath: got %q, want %q", res.OutputPath, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("output folder conversion missing: %v", err)
	}
}

func TestConvert_CorruptInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.jpg")
	os.WriteFile(input, []byte("garbage bytes"), 0o644)

	cfg, log, buf := testSetup(t, dir)
	conv := NewConverter(cfg, log, buf)

	if _, err := conv.Convert(input, ""); err == nil {
		t.Fatal("Convert should fail on corrupt input")
	}
	if _, err := os.Stat(filepath.Join(dir, "broken.webp")); !os.IsNotExist(err) {
		t.Error("failed conversion must not leave an output file")
	}
}

// --- Runner tests ---

func TestRunBatch_CountsSuccessesAndFailures(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 16, 16)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 8, 8)
	writeTestPNG(t, filepath.Join(dir, "c.png"), 4, 4)
	os.WriteFile(filepath.Join(dir, "corrupt.jpg"), []byte("not an image"), 0o644)

	cfg, log, buf := testSetup(t, dir)
	stats, err := RunBatch(context.Background(), cfg, log, buf)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}

	if stats.Total != 4 {
		t.Errorf("Total: got %d, want 4", stats.Total)
	}
	if stats.Converted != 3 {
		t.Errorf("Converted: got %d, want 3", stats.Converted)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed: got %d, want 1", stats.Failed)
	}
	if !strings.Contains(buf.String(), "Found 4 image(s) to convert...") {
		t.Errorf("batch header missing:\n%s", buf.String())
	}
}

func TestRunBatch_MissingDirectory(t *testing.T) {
	cfg, log, buf := testSetup(t, filepath.Join(t.TempDir(), "nope"))
	if _, err := RunBatch(context.Background(), cfg, log, buf); err == nil {
		t.Error("RunBatch should fail for a missing directory")
	}
}

func TestRunBatch_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg, log, buf := testSetup(t, dir)

	stats, err := RunBatch(context.Background(), cfg, log, buf)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if stats.Total != 0 || stats.Converted != 0 || stats.Failed != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if !strings.Contains(buf.String(), "No supported image files found.") {
		t.Errorf("missing empty-dir notice:\n%s", buf.String())
	}
}

func TestRunBatch_RecursiveConvertsSubtree(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub"), 0o755)
	writeTestPNG(t, filepath.Join(dir, "top.png"), 8, 8)
	writeTestPNG(t, filepath.Join(dir, "sub", "deep.png"), 8, 8)

	cfg, log, buf := testSetup(t, dir)
	cfg.Recursive = true

	stats, err := RunBatch(context.Background(), cfg, log, buf)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if stats.Converted != 2 {
		t.Errorf("Converted: got %d, want 2", stats.Converted)
	}
	if _, err := os.Stat(filepath.Join(dir, "sub", "deep.webp")); err != nil {
		t.Errorf("nested output missing: %v", err)
	}
}

func TestRunBatch_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, filepath.Join(dir, "a.png"), 8, 8)
	writeTestPNG(t, filepath.Join(dir, "b.png"), 8, 8)

	cfg, log, buf := testSetup(t, dir)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := RunBatch(ctx, cfg, log, buf)
	if err != nil {
		t.Fatalf("RunBatch: %v", err)
	}
	if stats.Converted != 0 {
		t.Errorf("cancelled run converted %d files, want 0", stats.Converted)
	}
}

func TestConvertAll_SkipsExistingWebP(t *testing.T) {
	dir := t.TempDir()
	already := filepath.Join(dir, "done.webp")
	touch(t, dir, "done.webp")
	input := filepath.Join(dir, "fresh.png")
	writeTestPNG(t, input, 8, 8)

	cfg, log, buf := testSetup(t, dir)
	stats := convertAll(context.Background(), cfg, log, buf, []string{already, input})

	if stats.Skipped != 1 {
		t.Errorf("Skipped: got %d, want 1", stats.Skipped)
	}
	if stats.Converted != 1 {
		t.Errorf("Converted: got %d, want 1", stats.Converted)
	}
	if !strings.Contains(buf.String(), "Skipping done.webp (already WebP)") {
		t.Errorf("skip notice missing:\n%s", buf.String())
	}
}

func TestRunSingle_Valid(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "one.png")
	writeTestPNG(t, input, 16, 16)

	cfg, log, buf := testSetup(t, input)
	stats, err := RunSingle(context.Background(), cfg, log, buf)
	if err != nil {
		t.Fatalf("RunSingle: %v", err)
	}
	if stats.Converted != 1 || stats.Failed != 0 {
		t.Errorf("stats: %+v", stats)
	}
	if !strings.Contains(buf.String(), "Conversion completed successfully") {
		t.Errorf("success line missing:\n%s", buf.String())
	}
}

func TestRunSingle_CorruptIsFatalAndWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.png")
	os.WriteFile(input, []byte("still not an image"), 0o644)

	cfg, log, buf := testSetup(t, input)
	stats, err := RunSingle(context.Background(), cfg, log, buf)
	if err == nil {
		t.Fatal("RunSingle should fail on a corrupt image")
	}
	if stats.Failed != 1 {
		t.Errorf("Failed: got %d, want 1", stats.Failed)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "broken.webp")); !os.IsNotExist(statErr) {
		t.Error("no output file may exist after a failed single conversion")
	}
}

func TestRunSingle_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "one.png")
	writeTestPNG(t, input, 8, 8)

	cfg, log, buf := testSetup(t, input)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stats, err := RunSingle(ctx, cfg, log, buf)
	if err == nil {
		t.Fatal("cancelled RunSingle must return an error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if stats.Converted != 0 {
		t.Errorf("cancelled run converted %d files, want 0", stats.Converted)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "one.webp")); !os.IsNotExist(statErr) {
		t.Error("no output file may exist after a cancelled single conversion")
	}
}

// --- Helpers ---

func testSetup(t *testing.T, input string) (*config.Config, *logging.Logger, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.InputPath = input
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return &cfg, log, &bytes.Buffer{}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
