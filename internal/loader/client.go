package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/Zachkp/portfolio-cms/internal/content"
)

// Client POSTs whole documents to a content API. It implements
// content.Saver.
type Client struct {
	URL    string
	Token  string
	Client *http.Client
}

type saveResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Save sends doc once; there are no retries.
func (c *Client) Save(ctx context.Context, doc *content.Document) content.SaveResult {
	body, err := json.Marshal(doc)
	if err != nil {
		log.Printf("Error encoding content: %v", err)
		return content.SaveResult{Success: false, Message: "Failed to save content"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		log.Printf("Error building save request: %v", err)
		return content.SaveResult{Success: false, Message: "Failed to save content"}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := httpClient(c.Client).Do(req)
	if err != nil {
		log.Printf("Error saving content: %v", err)
		return content.SaveResult{Success: false, Message: "Network error: Could not connect to server"}
	}
	defer resp.Body.Close()

	var out saveResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		if decodeErr != nil {
			log.Printf("Failed to read save response: %v", decodeErr)
			return content.SaveResult{Success: false, Message: "Failed to save content"}
		}
		log.Printf("Content saved successfully: %s", out.Message)
		return content.SaveResult{Success: true, Message: out.Message}
	}

	log.Printf("Failed to save content: status %d", resp.StatusCode)
	if decodeErr != nil || out.Error == "" {
		return content.SaveResult{Success: false, Message: "Failed to save content"}
	}
	return content.SaveResult{Success: false, Message: out.Error}
}
