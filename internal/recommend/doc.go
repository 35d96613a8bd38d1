package recommend

// Package recommend derives a curated list of quality choices from a
// normalized format list: the single best video, one entry per quality
// ladder step, and the best plus median audio renditions.
