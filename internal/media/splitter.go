package media

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"sync"

	apperrors "github.com/haulhire/crm/errors"
	"github.com/haulhire/crm/internal/domain/entities"
)

// durationPattern matches the Duration line in ffmpeg's stream metadata
// dump. Only the first match counts; later streams may carry their own
// duration lines.
var durationPattern = regexp.MustCompile(`Duration:\s*(\d{2}):(\d{2}):(\d{2}\.\d{2})`)

// Splitter cuts one audio asset into a fixed number of sequential
// chunks. Runs are serialized: the engine processes one asset at a time.
type Splitter struct {
	session      *Session
	segmentCount int
	bitrate      string
	sampleRate   int

	mu sync.Mutex
}

// NewSplitter creates a splitter bound to the session's engine
func NewSplitter(session *Session, segmentCount int, bitrate string, sampleRate int) *Splitter {
	if segmentCount < 1 {
		segmentCount = 3
	}
	if bitrate == "" {
		bitrate = "128k"
	}
	if sampleRate == 0 {
		sampleRate = 44100
	}
	return &Splitter{
		session:      session,
		segmentCount: segmentCount,
		bitrate:      bitrate,
		sampleRate:   sampleRate,
	}
}

// Split probes the asset's duration and cuts it into equal-length
// chunks. Chunk payloads are read back into memory and their files are
// removed as soon as each read completes; nothing stays on disk after
// the call returns.
func (sp *Splitter) Split(ctx context.Context, asset entities.AudioAsset, onProgress func(message string)) ([]entities.AudioSegment, error) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	s := sp.session
	if err := s.EnsureLoaded(ctx); err != nil {
		return nil, err
	}

	rundir, err := s.mkdirTemp(s.workdir, "run-*")
	if err != nil {
		return nil, apperrors.ErrProcessingFailed(err)
	}
	defer s.removeAll(rundir)

	srcPath := filepath.Join(rundir, "input"+filepath.Ext(asset.Name))
	if err := s.writeFile(srcPath, asset.Data, 0o600); err != nil {
		return nil, apperrors.ErrProcessingFailed(err)
	}

	emitProgress(onProgress, "Reading audio metadata...")
	totalDuration, ok := sp.probeDuration(ctx, srcPath)
	if !ok {
		// Containers ffmpeg cannot probe directly sometimes become
		// readable after a clean mp3 re-encode.
		emitProgress(onProgress, "Converting audio format...")
		converted := filepath.Join(rundir, "converted.mp3")
		if _, err := s.runner.Run(ctx, s.ffmpegPath,
			"-i", srcPath,
			"-vn",
			"-acodec", "libmp3lame",
			"-b:a", sp.bitrate,
			"-ar", strconv.Itoa(sp.sampleRate),
			converted,
		); err != nil {
			return nil, apperrors.ErrDurationDetectionFailed()
		}

		totalDuration, ok = sp.probeDuration(ctx, converted)
		if !ok {
			return nil, apperrors.ErrDurationDetectionFailed()
		}
		srcPath = converted
	}

	chunkDuration := totalDuration / float64(sp.segmentCount)
	segments := make([]entities.AudioSegment, 0, sp.segmentCount)

	for i := 0; i < sp.segmentCount; i++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		index := i + 1
		emitProgress(onProgress, fmt.Sprintf("Creating chunk %d of %d...", index, sp.segmentCount))

		start := float64(i) * chunkDuration
		chunkPath := filepath.Join(rundir, fmt.Sprintf("chunk_%d.mp3", index))

		args := []string{"-i", srcPath, "-ss", formatSeconds(start)}
		duration := chunkDuration
		if i < sp.segmentCount-1 {
			args = append(args, "-t", formatSeconds(chunkDuration))
		} else {
			// Last chunk runs to the end of the stream so rounding can
			// never drop the tail.
			duration = totalDuration - start
		}
		// Chunks are always re-encoded to mp3 so any accepted container
		// (webm, mp4, ogg) yields a stream the transcriber can read, and
		// cuts land exactly on the requested timestamps.
		args = append(args, "-acodec", "libmp3lame", "-b:a", sp.bitrate, chunkPath)

		if _, err := s.runner.Run(ctx, s.ffmpegPath, args...); err != nil {
			return nil, apperrors.ErrSegmentIntegrity(index)
		}

		data, err := s.readFile(chunkPath)
		if err != nil || len(data) == 0 {
			return nil, apperrors.ErrSegmentIntegrity(index)
		}
		_ = s.remove(chunkPath)

		segments = append(segments, entities.AudioSegment{
			Index:    index,
			Name:     entities.SegmentName(asset, index),
			Data:     data,
			Duration: duration,
			Size:     int64(len(data)),
		})
	}

	return segments, nil
}

// probeDuration runs the engine against the file with no output target
// and scrapes the duration from the metadata dump. The engine exits
// nonzero in this mode, so the error is ignored and only the stderr
// text matters.
func (sp *Splitter) probeDuration(ctx context.Context, path string) (float64, bool) {
	result, _ := sp.session.runner.Run(ctx, sp.session.ffmpegPath, "-i", path)

	match := durationPattern.FindStringSubmatch(result.Stderr)
	if match == nil {
		return 0, false
	}

	hours, _ := strconv.ParseFloat(match[1], 64)
	minutes, _ := strconv.ParseFloat(match[2], 64)
	seconds, _ := strconv.ParseFloat(match[3], 64)

	total := hours*3600 + minutes*60 + seconds
	if total <= 0 {
		return 0, false
	}
	return total, true
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func emitProgress(cb func(message string), message string) {
	if cb != nil {
		cb(message)
	}
}
