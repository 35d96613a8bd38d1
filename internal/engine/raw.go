package engine

// RawInfo is the engine's metadata record as reported for one media item.
// Field presence is platform-dependent; the normalizer owns interpretation.
type RawInfo struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Thumbnail   string         `json:"thumbnail"`
	Thumbnails  []RawThumbnail `json:"thumbnails"`
	Duration    *float64       `json:"duration"`
	Uploader    string         `json:"uploader"`
	Channel     string         `json:"channel"`
	UploaderURL string         `json:"uploader_url"`
	ChannelURL  string         `json:"channel_url"`
	ViewCount   *int64         `json:"view_count"`
	LikeCount   *int64         `json:"like_count"`
	Description string         `json:"description"`
	UploadDate  string         `json:"upload_date"`
	Extractor   string         `json:"extractor"`
	WebpageURL  string         `json:"webpage_url"`
	Formats     []RawFormat    `json:"formats"`
	IsLive      bool           `json:"is_live"`
}

// RawFormat is one unfiltered format entry reported by the engine.
type RawFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	FormatNote     string   `json:"format_note"`
	Width          *int     `json:"width"`
	Height         *int     `json:"height"`
	Filesize       *int64   `json:"filesize"`
	FilesizeApprox *int64   `json:"filesize_approx"`
	VCodec         string   `json:"vcodec"`
	ACodec         string   `json:"acodec"`
	FPS            *float64 `json:"fps"`
	TBR            *float64 `json:"tbr"`
	ABR            *float64 `json:"abr"`
}

// RawThumbnail is one thumbnail candidate reported by the engine.
type RawThumbnail struct {
	URL        string `json:"url"`
	Preference *int   `json:"preference"`
	Width      *int   `json:"width"`
}
