package scraper

// ScrapedJob is one listing the scraper service extracted from a company
// careers page.
type ScrapedJob struct {
	ExternalID   string `json:"external_id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Salary       string `json:"salary"`
	JobType      string `json:"job_type"`
	JobURL       string `json:"job_url"`
}

type scrapeRequest struct {
	Query    string `json:"query"`
	Location string `json:"location"`
}

type scrapeResponse struct {
	Jobs []ScrapedJob `json:"jobs"`
}
