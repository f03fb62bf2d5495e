package batch

import "pairfetch/pkg/models"

// Status splits items by whether their image is already on disk
type Status struct {
	Present []models.WorkItem
	Missing []models.WorkItem
}

// CheckStatus inspects the filesystem only; no network requests are made
func CheckStatus(items []models.WorkItem, files FileChecker) Status {
	var st Status
	for _, item := range items {
		if files.Exists(item.Image) {
			st.Present = append(st.Present, item)
		} else {
			st.Missing = append(st.Missing, item)
		}
	}
	return st
}
