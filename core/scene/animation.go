package scene

// KeyframeTrack animates one property of one node.
type KeyframeTrack struct {
	Name   string
	Times  []float32
	Values []float32
}

// AnimationClip is a named, reusable set of keyframe tracks.
type AnimationClip struct {
	Name     string
	Duration float32
	Tracks   []KeyframeTrack
}
