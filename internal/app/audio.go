package app

import (
	"mime"
	"path/filepath"
	"strings"
)

// audioMIMETypes maps the audio extensions the intake accepts to the media
// type sent to the ingestion boundary.
var audioMIMETypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".opus": "audio/opus",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".webm": "audio/webm",
	".aiff": "audio/aiff",
	".amr":  "audio/amr",
}

// audioMIME reports the media type for an audio file path, or ok=false when
// the extension is not a recognized audio format.
func audioMIME(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if mt, ok := audioMIMETypes[ext]; ok {
		return mt, true
	}
	if mt := mime.TypeByExtension(ext); strings.HasPrefix(mt, "audio/") {
		return mt, true
	}
	return "", false
}
