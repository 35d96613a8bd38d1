package normalize

// Package normalize turns heterogeneous raw engine metadata into the stable
// VideoInfo shape: it filters out non-media entries, derives quality labels,
// and ranks format variants.
