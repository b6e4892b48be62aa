package types

// DBHealth is returned by the unauthenticated database probe. It exposes
// connectivity and a row count only; never credentials or driver errors.
type DBHealth struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Count    int64  `json:"count"`
	Database string `json:"database"`
}
