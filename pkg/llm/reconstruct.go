package llm

import (
	"context"
	"fmt"
)

const reconstructionPrompt = "The following webpage at URL '%s' is currently unavailable. " +
	"Generate a possible webpage reconstruction for it, based only on the URL and your general knowledge. " +
	"Output simple HTML content with reasonable title, heading, and placeholder text that might have existed."

// ReconstructionPrompt is the instruction sent for a page with no archived copy.
func ReconstructionPrompt(pageURL string) string {
	return fmt.Sprintf(reconstructionPrompt, pageURL)
}

// Reconstruct asks the model for a plausible version of the page at pageURL.
func (c *Client) Reconstruct(ctx context.Context, pageURL string) (string, error) {
	content, err := c.Complete(ctx, ReconstructionPrompt(pageURL))
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", &APIError{Message: "empty reconstruction"}
	}
	return content, nil
}
