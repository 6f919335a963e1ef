package badger

// Key prefixes for different data types
const (
	documentRecordPrefix = "docrec"
	documentDataPrefix   = "docdat"
)

// makeDocumentRecordKey generates a key for a document metadata record.
func makeDocumentRecordKey(storageKey string) []byte {
	return []byte(documentRecordPrefix + ":" + storageKey)
}

// makeDocumentDataKey generates a key for a document's raw bytes.
func makeDocumentDataKey(storageKey string) []byte {
	return []byte(documentDataPrefix + ":" + storageKey)
}
