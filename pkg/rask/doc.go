// Package rask is a client for the Rask media dubbing and transcription API.
//
// The client authenticates with OAuth2 client credentials. A request rejected
// for a missing or expired token triggers one re-authentication and one
// replay; every other failure is returned to the caller as is.
//
// Payloads are validated before any network call. Timestamps use the
// HH:MM:SS,ffffff form, speakers are labelled SPEAKER_<n>, and glossary
// entries are bounded in size.
//
// Example:
//
//	client, err := rask.NewClient(&rask.Config{
//		ClientID:     os.Getenv("RASK_CLIENT_ID"),
//		ClientSecret: os.Getenv("RASK_CLIENT_SECRET"),
//	})
//	if err != nil {
//		return err
//	}
//	credits, err := client.GetCredits(ctx)
package rask
