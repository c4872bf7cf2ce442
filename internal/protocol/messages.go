package protocol //handles the wire format between the widget and the answer service
// /ask request and response payloads
import (
	"encoding/json"
	"errors"
)

// AskPath is the path of the answer endpoint, relative to the server URL
const AskPath = "/ask"

// ContentType is sent with every request body
const ContentType = "application/json"

// ErrNoAnswer is returned when a response parses but carries no string answer
var ErrNoAnswer = errors.New("response has no answer field")

// AskRequest is the body POSTed to the answer endpoint
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse is the body returned by the answer endpoint
type AskResponse struct {
	Answer *string `json:"answer"` // pointer so a missing field can be told apart from ""
}

// EncodeAskRequest encodes a query as a request body
func EncodeAskRequest(query string) ([]byte, error) {
	return json.Marshal(AskRequest{Query: query})
}

// DecodeAskResponse decodes a response body and returns its answer
func DecodeAskResponse(data []byte) (string, error) {
	var resp AskResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", err
	}
	if resp.Answer == nil {
		return "", ErrNoAnswer
	}
	return *resp.Answer, nil
}
