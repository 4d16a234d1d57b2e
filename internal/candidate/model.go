package candidate

import "encoding/json"

// Record is the structured candidate produced by extraction. Every field is
// optional: extraction output is untrusted and downstream scoring must cope
// with partially filled records.
type Record struct {
	PersonalInformation PersonalInformation `json:"personal_information"`
	Skill               Skill               `json:"skill"`
	WorkExperience      []WorkExperience    `json:"work_experience"`
	Education           []Education         `json:"education"`
	Certifications      []Certification     `json:"certifications"`
	Summary             Summary             `json:"summary"`
	Achievements        Achievements        `json:"achievements"`
	Projects            []Project           `json:"projects"`
}

// PersonalInformation is the contact block of a resume.
type PersonalInformation struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	EmailAddress string `json:"email_address"`
	LinkedInURL  string `json:"linkedin_url"`
	WebsiteURL   string `json:"website_url"`
	GithubURL    string `json:"github_url"`
	Headline     string `json:"headline"`
}

// Skill groups free-text skill lines under a category.
type Skill struct {
	Category    string   `json:"category"`
	SkillValues []string `json:"skill_values"`
}

// WorkExperience is one employment entry. Dates are free text.
type WorkExperience struct {
	CompanyName string `json:"company_name"`
	JobTitle    string `json:"job_title"`
	City        string `json:"city"`
	Country     string `json:"country"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Description string `json:"description"`
}

// Education is one education entry. Grade is free text ("8.5/10", "89%", ...).
type Education struct {
	InstitutionName string `json:"institution_name"`
	FieldOfStudy    string `json:"field_of_study"`
	Degree          string `json:"degree"`
	Grade           string `json:"grade"`
	City            string `json:"city"`
	Country         string `json:"country"`
	FromDate        string `json:"from_date"`
	ToDate          string `json:"to_date"`
	Description     string `json:"description"`
}

// Certification is one certification entry.
type Certification struct {
	CertificationName       string `json:"certification_name"`
	Issuer                  string `json:"issuer"`
	CertificationDate       string `json:"certification_date"`
	CertificationExpiryDate string `json:"certification_expiry_date"`
	CertificationURL        string `json:"certification_url"`
	Description             string `json:"description"`
}

// Summary holds the free-text profile blurb.
type Summary struct {
	Profile string `json:"profile"`
}

// Achievements holds the free-text achievements blurb.
type Achievements struct {
	Achievements string `json:"achievements"`
}

// Project is one project entry; shares the date-range shape with work entries.
type Project struct {
	Title       string `json:"title"`
	ProjectRole string `json:"project_role"`
	City        string `json:"city"`
	Country     string `json:"country"`
	FromDate    string `json:"from_date"`
	ToDate      string `json:"to_date"`
	Description string `json:"description"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (r Record) FullName() string {
	name := r.PersonalInformation.FirstName
	if r.PersonalInformation.LastName != "" {
		if name != "" {
			name += " "
		}
		name += r.PersonalInformation.LastName
	}
	return name
}

// Encode serializes a Record back to its storage payload.
func Encode(rec Record) ([]byte, error) {
	return json.Marshal(rec)
}

// Decode parses a raw extraction payload into a Record.
func Decode(raw []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// JobRequirements describes what a job asks for. Immutable once constructed;
// one instance is shared by every scorer in a run.
type JobRequirements struct {
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	MinExperienceYears int      `json:"min_experience_years"`
	RequiredEducation  string   `json:"required_education"`
	IndustryKeywords   []string `json:"industry_keywords"`
	JobTitleKeywords   []string `json:"job_title_keywords"`
	ExtraInformation   []string `json:"extra_information"`
	LocationPreference string   `json:"location_preference,omitempty"`
}
