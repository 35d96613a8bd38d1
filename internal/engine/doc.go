package engine

// Package engine defines the boundary to the external extraction/download
// engine and its production implementation on top of yt-dlp (via
// github.com/lrstanley/go-ytdlp). The rest of the service treats the engine
// as a black box that either returns raw metadata or fails with an error.
