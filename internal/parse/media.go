package parse

import (
	"regexp"
	"strings"
)

// mediaMarkers maps export placeholders to a media kind. Order matters: the
// more specific markers are checked before the generic "media omitted" ones.
var mediaMarkers = []struct {
	kind    MediaType
	markers []string
}{
	{MediaSticker, []string{"sticker omitted", "çıkartma dahil edilmedi", ".webp (file attached)", ".webp (dosya ekli)"}},
	{MediaGIF, []string{"gif omitted", "gif dahil edilmedi", ".gif (file attached)", ".gif (dosya ekli)"}},
	{MediaVideo, []string{"video omitted", "video dahil edilmedi", ".mp4 (file attached)", ".mp4 (dosya ekli)", ".mov (file attached)"}},
	{MediaAudio, []string{"audio omitted", "ses dahil edilmedi", ".opus (file attached)", ".opus (dosya ekli)", ".m4a (file attached)", ".mp3 (file attached)"}},
	{MediaDocument, []string{"document omitted", "belge dahil edilmedi", ".pdf (file attached)", ".pdf (dosya ekli)", ".docx (file attached)", ".xlsx (file attached)"}},
	{MediaImage, []string{
		"image omitted", "görüntü dahil edilmedi", "fotoğraf dahil edilmedi",
		".jpg (file attached)", ".jpg (dosya ekli)", ".jpeg (file attached)", ".png (file attached)",
		"<media omitted>", "<medya dahil edilmedi>", "<medya atlandı>",
	}},
}

var urlRe = regexp.MustCompile(`(?i)(https?://|www\.)\S+`)

// ClassifyMedia infers the media kind of a message body from placeholder
// markers or, failing that, from a URL. MediaNone means plain text.
func ClassifyMedia(content string) MediaType {
	lower := strings.ToLower(content)
	for _, mm := range mediaMarkers {
		for _, marker := range mm.markers {
			if strings.Contains(lower, marker) {
				return mm.kind
			}
		}
	}
	if urlRe.MatchString(content) {
		return MediaLink
	}
	return MediaNone
}
