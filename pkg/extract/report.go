package extract

// RunReport aggregates the per-source outcomes of one full registry run.
type RunReport struct {
	Succeeded int `json:"succeeded"`
	Partial   int `json:"partial"`
	Failed    int `json:"failed"`
	Records   int `json:"records"`
	Issues    int `json:"issues"`
}

func Summarize(results []ExtractionResult) RunReport {
	var report RunReport
	for _, res := range results {
		switch res.Status {
		case StatusSuccess:
			report.Succeeded++
		case StatusPartial:
			report.Partial++
		case StatusFailed:
			report.Failed++
		}
		report.Records += len(res.Records)
		report.Issues += len(res.Issues)
	}
	return report
}
