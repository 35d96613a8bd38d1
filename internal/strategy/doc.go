package strategy

// Package strategy maps a media URL to an ordered list of engine
// configuration overrides. Order encodes empirically-tuned success
// likelihood; the selection is stateless and side-effect free.
