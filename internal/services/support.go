package services

const maxPreviewSamples = 5

type ActionPreview struct {
	Type        ActionType
	Sources     []string
	Destination string
	TotalFiles  int
	TotalDirs   int
	TotalBytes  int64
	Samples     []string
	Warnings    []string
}

// NeedsRecursiveConfirm reports whether the preview covers whole directories,
// which must be confirmed twice before they are detached.
func (preview ActionPreview) NeedsRecursiveConfirm() bool {
	return preview.Type == ActionDetach && preview.TotalDirs > 0
}
