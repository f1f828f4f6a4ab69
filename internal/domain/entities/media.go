package entities

import "fmt"

// AudioAsset is the user-supplied interview recording. It lives only for the
// duration of one pipeline run; only derived text is ever persisted.
type AudioAsset struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// BaseName returns the asset name without its extension
func (a AudioAsset) BaseName() string {
	name := a.Name
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
		if name[i] == '/' || name[i] == '\\' {
			break
		}
	}
	return name
}

// AudioSegment is one time-bounded slice of an AudioAsset. Indices are
// 1-based and contiguous; concatenating segments in index order reconstructs
// the source duration.
type AudioSegment struct {
	Index    int
	Name     string
	Data     []byte
	Duration float64
	Size     int64
}

// SegmentName derives the display name for chunk index of the given asset
func SegmentName(asset AudioAsset, index int) string {
	return fmt.Sprintf("%s_part%d.mp3", asset.BaseName(), index)
}

// Release drops the segment's media buffer. Segment payloads are memory-heavy
// and must not outlive their transcription.
func (s *AudioSegment) Release() {
	s.Data = nil
}
