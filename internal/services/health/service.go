package health

// AppName is reported by the health endpoint.
const AppName = "StudyByte"

// Features lists the user-facing tools.
var Features = []string{"Mental Health Chat", "Text Summarizer", "PDF Processor"}

// Report is the health payload.
type Report struct {
	Status          string   `json:"status"`
	AppName         string   `json:"app_name"`
	Features        []string `json:"features"`
	GeminiAvailable bool     `json:"gemini_available"`
}

// Service encapsulates health-related checks.
type Service struct {
	modelAvailable bool
}

// NewService constructs a new health service. modelAvailable is fixed for the
// life of the process because the provider is chosen at startup.
func NewService(modelAvailable bool) *Service {
	return &Service{modelAvailable: modelAvailable}
}

// Status returns the health payload.
func (s *Service) Status() Report {
	features := make([]string, len(Features))
	copy(features, Features)
	return Report{
		Status:          "healthy",
		AppName:         AppName,
		Features:        features,
		GeminiAvailable: s.modelAvailable,
	}
}
