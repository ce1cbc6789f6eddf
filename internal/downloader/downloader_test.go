package downloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/caption-scribe/internal/logger"
	"github.com/nguyentantai21042004/caption-scribe/internal/subtitle"
)

// fakeExecutor scripts the two yt-dlp invocations Fetch performs: the title
// probe via Execute and the caption download via ExecuteInDir.
type fakeExecutor struct {
	titleOutput  string
	titleErr     error
	subtitleName string
	subtitleData string
	downloadErr  error

	downloadArgs []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.titleOutput, f.titleErr
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.downloadArgs = args
	if f.downloadErr != nil {
		return "", f.downloadErr
	}
	if f.subtitleName != "" {
		if err := os.WriteFile(filepath.Join(dir, f.subtitleName), []byte(f.subtitleData), 0644); err != nil {
			return "", err
		}
	}
	return "", nil
}

func TestFetch(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{
		titleOutput:  "My Talk\n",
		subtitleName: "dQw4w9WgXcQ.en.vtt",
		subtitleData: "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nhello\n",
	}
	d := New("yt-dlp", "en", exec, logger.New("error"))

	dl, err := d.Fetch(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if dl.Title != "My Talk" {
		t.Errorf("Title = %q, want %q", dl.Title, "My Talk")
	}
	if dl.Format != subtitle.FormatVTT {
		t.Errorf("Format = %v, want vtt", dl.Format)
	}
	if dl.Lang != "en" {
		t.Errorf("Lang = %q, want en", dl.Lang)
	}
	if string(dl.Data) != exec.subtitleData {
		t.Errorf("Data = %q", dl.Data)
	}

	joined := ""
	for _, a := range exec.downloadArgs {
		joined += a + " "
	}
	for _, want := range []string{"--write-subs", "--write-auto-subs", "--sub-langs", "en", "--skip-download"} {
		found := false
		for _, a := range exec.downloadArgs {
			if a == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("download args missing %q: %s", want, joined)
		}
	}
}

func TestFetchTitleFallsBackToLastLine(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{
		titleOutput:  "WARNING: something\n\nActual Title\n",
		subtitleName: "id.en.srt",
		subtitleData: "1\n00:00:00,000 --> 00:00:01,000\nhi\n",
	}
	d := New("yt-dlp", "en", exec, logger.New("error"))

	dl, err := d.Fetch(ctx, "id")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if dl.Title != "Actual Title" {
		t.Errorf("Title = %q, want the last non-empty line", dl.Title)
	}
	if dl.Format != subtitle.FormatSRT {
		t.Errorf("Format = %v, want srt", dl.Format)
	}
}

func TestFetchNoSubtitle(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{titleOutput: "No Captions Here"}
	d := New("yt-dlp", "en", exec, logger.New("error"))

	_, err := d.Fetch(ctx, "id")
	if !errors.Is(err, ErrNoSubtitle) {
		t.Errorf("Fetch() error = %v, want ErrNoSubtitle", err)
	}
}

func TestFetchDownloadFailure(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("network unreachable")
	exec := &fakeExecutor{titleOutput: "Title", downloadErr: wantErr}
	d := New("yt-dlp", "en", exec, logger.New("error"))

	_, err := d.Fetch(ctx, "id")
	if !errors.Is(err, wantErr) {
		t.Errorf("Fetch() error = %v, want %v", err, wantErr)
	}
}

func TestFetchTitleFailure(t *testing.T) {
	ctx := context.Background()
	exec := &fakeExecutor{titleErr: errors.New("no such video")}
	d := New("yt-dlp", "en", exec, logger.New("error"))

	if _, err := d.Fetch(ctx, "id"); err == nil {
		t.Error("expected error when the title probe fails")
	}
}
