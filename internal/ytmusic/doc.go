package ytmusic

// Package ytmusic is the metadata-search collaborator: an unauthenticated
// client for the YouTube Music catalog that shapes raw search and lookup
// results into stable song records.
