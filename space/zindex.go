package space

// ZBucket is a stacking-order bucket. Buckets are ordered bottom to
// top; within one bucket, the most recently raised window is topmost.
type ZBucket uint8

const (
	ZBackground ZBucket = iota
	ZBottom
	ZShell
	ZTop
	ZOverlay
	ZPopups
	ZPopupsOverlay

	zBucketCount
)

// Less reports whether z sits below other in stacking order.
func (z ZBucket) Less(other ZBucket) bool { return z < other }
