package sprite

import (
	"slices"

	"github.com/spriteconv/spriteconv/frame"
)

// Poses of a 16 frame C16 group that survive in a 10 frame S16 group
var c16Keep = [c16GroupSize]bool{
	0: true, 1: true, 2: true, 3: true,
	4: true, 5: true, 6: true, 7: true,
	9: true, 13: true,
}

// convertFrames returns the frame list to write when a sheet in format
// from is saved as format to. Only body part sheets change length.
func convertFrames(frames []*frame.Frame, from, to Format, bodyPart byte) []*frame.Frame {
	switch {
	case from == to, bodyPart == 0:
		return slices.Clone(frames)
	case to == FormatS16:
		return shrinkGroups(frames)
	default:
		return expandGroups(frames)
	}
}

// shrinkGroups drops the six C16 poses that have no S16 equivalent.
func shrinkGroups(frames []*frame.Frame) []*frame.Frame {
	out := make([]*frame.Frame, 0, len(frames)*s16GroupSize/c16GroupSize)
	for i, f := range frames {
		if c16Keep[i%c16GroupSize] {
			out = append(out, f)
		}
	}
	return out
}

// expandGroups puts three extra copies in front of the last two frames of
// every S16 group. Working backwards keeps the remaining indices valid.
func expandGroups(frames []*frame.Frame) []*frame.Frame {
	out := make([]*frame.Frame, len(frames), len(frames)*c16GroupSize/s16GroupSize+c16GroupSize)
	copy(out, frames)
	for i := len(frames) - 1; i >= 0; i-- {
		if i%s16GroupSize >= 8 {
			out = slices.Insert(out, i, out[i], out[i], out[i])
		}
	}
	return out
}
