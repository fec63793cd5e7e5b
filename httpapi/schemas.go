package httpapi

import "github.com/user/showcut-cli/cue"

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_s"`
}

type DocumentResponse struct {
	Title     string  `json:"title"`
	Num       *int    `json:"num,omitempty"`
	VideoPath string  `json:"videoPath"`
	Framerate float64 `json:"framerate"`
	CueCount  int     `json:"cueCount"`
	Duration  float64 `json:"duration"`
}

type CuesResponse struct {
	Cues []cue.Cue `json:"cues"`
}

type ActiveCueResponse struct {
	Time  float64 `json:"time"`
	Index int     `json:"index"`
	Cue   cue.Cue `json:"cue"`
}
