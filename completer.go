package supplier

import (
	"context"
	"strings"
)

// Message roles understood by completion services.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one turn sent to a completion service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer sends messages to a language-model completion service and
// returns the text of its reply.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// TemplateMarker is replaced by the corpus in ExtractionTemplate.
const TemplateMarker = "[( )]"

// ExtractionTemplate instructs the model to extract a Profile from website
// content substituted at TemplateMarker.
const ExtractionTemplate = `
[( )]

I have a block of website content that contains information about a company. Could you please analyze it and extract the following fields:

Company Name: Full name of the company.
Location:
Headquarters: Details of the location of Headquarters in City, State, and Country format.
Manufacturing locations: An array of all the manufacturing locations in City, State, and Country formats.
Additional locations: An array of any additional company locations in City, State, and Country format.
Expertise Summary: A 200-word summary about the company's area of expertise.
Accomplishments: A 200-word summary about the company's accomplishments or null if not found.
Industry: About 6-7 tags that accurately describe the domain that this company is operating in (e.g., "Automotive", "Electronics", etc).
Contact Email: An array of company email addresses listed on the website content.
Contact Phone: An array of company phone numbers.
Contact Addresses: An array of all the addresses in the content.
Please return your response as a JSON object in the following format:


{
   "Company_Name": <Full name of the company>,
   "Location": {
     "Headquarters": <Details of location of Headquarters in City, State and Country format>,
     "Manufacturing_locations": <Array of all the Manufacturing locations in City, State and Country formats>,
     "Additional_locations": <Array of any additional company locations in City, State and Country format>
   },
   "Expertise_Summary": <Write a 200 word summary about the company's area of expertise>,
   "Accomplishments": <Write a 200 word summary about the company's accomplishments or null if not found>,
   "Industry": <Write about 6-7 tags that accurately describe the domain that this company is operating in, Example: "Automotive", "Electronics", etc>,
   "Contact_email": <Construct an array of company email addresses listed on the website content>,
   "Contact_phone": <Array of company phone numbers>,
   "Contact_addresses": <Array of all the addresses in the content>
 }
 Ensure the JSON string is correctly formatted without backticks or any special characters
`

// SystemPrompt returns ExtractionTemplate with its marker replaced by corpus.
func SystemPrompt(corpus string) string {
	return strings.Replace(ExtractionTemplate, TemplateMarker, corpus, 1)
}

// ExtractionMessages builds the message pair sent for profile extraction.
// The system turn carries the corpus; the user turn carries the raw
// template with its marker still in place.
func ExtractionMessages(corpus string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt(corpus)},
		{Role: RoleUser, Content: ExtractionTemplate},
	}
}
