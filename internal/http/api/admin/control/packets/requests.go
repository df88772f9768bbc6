package packets

// VerifyTranslationRequest pins an editor-approved Sindhi text to a memory entry.
type VerifyTranslationRequest struct {
	Sindhi string `json:"sindhi"`
}

type CreateExportRequest struct {
	// Name of the exported file; defaults to a timestamped name.
	Name string `json:"name"`
}
