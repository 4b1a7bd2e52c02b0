package score

import "fmt"

// MetadataItem is a single score-level (key, value) metadata pair after
// elision and normalization.
type MetadataItem struct {
	Key   string
	Value string
}

// Signature returns the content signature of the item.
func (m *MetadataItem) Signature() string { return m.Key + "=" + m.Value }

// NotationSize is one symbol per metadata item.
func (m *MetadataItem) NotationSize() int { return 1 }

func (m *MetadataItem) String() string {
	return fmt.Sprintf("metadata %s", m.Key)
}

// elidedMetadataKeys are raw/bookkeeping fields that must not transfer
// across re-encodings and so never participate in comparison.
var elidedMetadataKeys = map[string]bool{
	"filePath":     true,
	"fileFormat":   true,
	"fileNumber":   true,
	"software":     true,
	"encodingDate": true,
	"raw":          true,
}

// normalizeMetadataKey re-keys contributor roles that different encoders
// spell differently; the normalization exists only for comparison.
func normalizeMetadataKey(key string) string {
	if key == "poet" {
		return "lyricist"
	}
	return key
}
