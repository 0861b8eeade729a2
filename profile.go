package supplier

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Request identifies the company to ingest.
type Request struct {
	CompanyName string `json:"companyName"`
	CompanyURL  string `json:"companyURL"`
}

// Validate returns an error if neither a name nor a URL is present.
func (r *Request) Validate() error {
	if r.CompanyName == "" && r.CompanyURL == "" {
		return Errorf(EINVALID, "Please provide a URL or Name in the request body.")
	}
	return nil
}

// Location groups the places a company operates from.
type Location struct {
	Headquarters           string     `json:"Headquarters"`
	ManufacturingLocations StringList `json:"Manufacturing_locations"`
	AdditionalLocations    StringList `json:"Additional_locations"`
}

// UnmarshalJSON implements json.Unmarshaler. A non-object location is
// taken as the headquarters.
func (l *Location) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || trimmed[0] != '{' {
		var hq looseString
		if err := json.Unmarshal(data, &hq); err != nil {
			return err
		}
		*l = Location{Headquarters: string(hq)}
		return nil
	}

	var raw struct {
		Headquarters           looseString `json:"Headquarters"`
		ManufacturingLocations StringList  `json:"Manufacturing_locations"`
		AdditionalLocations    StringList  `json:"Additional_locations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = Location{
		Headquarters:           string(raw.Headquarters),
		ManufacturingLocations: raw.ManufacturingLocations,
		AdditionalLocations:    raw.AdditionalLocations,
	}
	return nil
}

// Profile is the structured company profile extracted from a corpus.
// Every field is optional; a model may leave any of them empty or null.
type Profile struct {
	CompanyName      string     `json:"Company_Name"`
	Location         Location   `json:"Location"`
	ExpertiseSummary string     `json:"Expertise_Summary"`
	Accomplishments  *string    `json:"Accomplishments"`
	Industry         StringList `json:"Industry"`
	ContactEmail     StringList `json:"Contact_email"`
	ContactPhone     StringList `json:"Contact_phone"`
	ContactAddresses StringList `json:"Contact_addresses"`
}

// UnmarshalJSON implements json.Unmarshaler. Text fields accept any JSON
// value; numbers, booleans, arrays and objects are flattened to text.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		CompanyName      looseString  `json:"Company_Name"`
		Location         Location     `json:"Location"`
		ExpertiseSummary looseString  `json:"Expertise_Summary"`
		Accomplishments  *looseString `json:"Accomplishments"`
		Industry         StringList   `json:"Industry"`
		ContactEmail     StringList   `json:"Contact_email"`
		ContactPhone     StringList   `json:"Contact_phone"`
		ContactAddresses StringList   `json:"Contact_addresses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Profile{
		CompanyName:      string(raw.CompanyName),
		Location:         raw.Location,
		ExpertiseSummary: string(raw.ExpertiseSummary),
		Industry:         raw.Industry,
		ContactEmail:     raw.ContactEmail,
		ContactPhone:     raw.ContactPhone,
		ContactAddresses: raw.ContactAddresses,
	}
	if raw.Accomplishments != nil {
		accomplishments := string(*raw.Accomplishments)
		p.Accomplishments = &accomplishments
	}
	return nil
}

// StringList is a list of strings that also accepts a bare value or null
// when decoding, since models do not always honour array-typed fields.
// Elements that are not strings are flattened to text.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		items = []json.RawMessage{data}
	}

	var list StringList
	if items != nil {
		list = make(StringList, 0, len(items))
	}
	for _, item := range items {
		parts, err := flatten(item)
		if err != nil {
			return err
		}
		if len(parts) > 0 {
			list = append(list, strings.Join(parts, textSeparator))
		}
	}
	if len(list) == 0 && !isArray(data) {
		list = nil
	}
	*l = list
	return nil
}

const textSeparator = ", "

// looseString decodes any JSON value into text. null and empty values
// become the empty string.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	parts, err := flatten(data)
	if err != nil {
		return err
	}
	*s = looseString(strings.Join(parts, textSeparator))
	return nil
}

// flatten returns the non-empty scalars of a JSON value in document order.
// Object keys are dropped.
func flatten(data []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var parts []string
	if err := collect(dec, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

func collect(dec *json.Decoder, parts *[]string) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch v := tok.(type) {
	case json.Delim:
		object := v == '{'
		for dec.More() {
			if object {
				if _, err := dec.Token(); err != nil {
					return err
				}
			}
			if err := collect(dec, parts); err != nil {
				return err
			}
		}
		_, err := dec.Token()
		return err
	case string:
		if text := strings.TrimSpace(v); text != "" {
			*parts = append(*parts, text)
		}
	case json.Number:
		*parts = append(*parts, v.String())
	case bool:
		*parts = append(*parts, strconv.FormatBool(v))
	}
	return nil
}

func isArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ParseProfile parses completion text into a Profile. It returns EPARSE if
// the text is not a JSON object. A surrounding markdown code fence is
// tolerated.
func ParseProfile(text string) (*Profile, error) {
	var profile *Profile
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &profile); err != nil {
		return nil, Errorf(EPARSE, "invalid profile JSON: %v", err)
	}
	if profile == nil {
		return nil, Errorf(EPARSE, "invalid profile JSON: expected an object")
	}
	return profile, nil
}

// stripCodeFence removes a ```json ... ``` or ``` ... ``` wrapper.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// Result is the outcome of one ingestion: either a profile or an error
// message, never both.
type Result struct {
	Summary *Profile `json:"summary,omitempty"`
	Error   string   `json:"error,omitempty"`

	// Code is the application error code behind Error. It is not serialized.
	Code string `json:"-"`
}

// Err returns the failure carried by r as an *Error, or nil on success.
func (r Result) Err() error {
	if r.Error == "" {
		return nil
	}
	code := r.Code
	if code == "" {
		code = EINTERNAL
	}
	return Errorf(code, "%s", r.Error)
}

// NewResult converts the outcome of an ingestion into a Result.
func NewResult(profile *Profile, err error) Result {
	if err != nil {
		return Result{Error: ErrorMessage(err), Code: ErrorCode(err)}
	}
	return Result{Summary: profile}
}
