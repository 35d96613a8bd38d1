package cache

// Package cache is the bounded on-disk store of completed download artifacts,
// keyed by media identity plus container extension. Eviction is a pure
// age+size watermark policy: only the original download time matters, reads
// do not refresh eligibility.
