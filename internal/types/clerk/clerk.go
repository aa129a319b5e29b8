package clerk

import "encoding/json"

// ClerkWebhookEvent is the outer envelope Clerk posts to our webhook
// endpoint. Data is decoded per event type.
type ClerkWebhookEvent struct {
	Type   string          `json:"type"`
	Object string          `json:"object"`
	Data   json.RawMessage `json:"data"`
}

type EmailVerification struct {
	Status   string `json:"status"`
	Strategy string `json:"strategy"`
}

type EmailAddress struct {
	ID           string            `json:"id"`
	EmailAddress string            `json:"email_address"`
	Verification EmailVerification `json:"verification"`
}

// ClerkUserData is the user payload inside user.created / user.updated
// events.
type ClerkUserData struct {
	ID              string         `json:"id"`
	Username        string         `json:"username"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	ImageURL        string         `json:"image_url"`
	ProfileImageURL string         `json:"profile_image_url"`
	EmailAddresses  []EmailAddress `json:"email_addresses"`
	CreatedAt       int64          `json:"created_at"`
	UpdatedAt       int64          `json:"updated_at"`
}
