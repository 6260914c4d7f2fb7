// Package models defines the domain types shared across the client:
// provider records pushed by the remote agent and transcript entries.
package models

// Address is the mailing address of a provider.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// ProviderRecord is one healthcare provider returned by the agent's search.
// Field names match the data-channel wire format; the agent controls record
// order (relevance), so consumers must not re-sort.
type ProviderRecord struct {
	ID                   string   `json:"id"`
	FullName             string   `json:"full_name"`
	Specialty            string   `json:"specialty"`
	Phone                string   `json:"phone"`
	Email                string   `json:"email"`
	Address              Address  `json:"address"`
	YearsExperience      int      `json:"years_experience"`
	Rating               float64  `json:"rating"`
	BoardCertified       bool     `json:"board_certified"`
	AcceptingNewPatients bool     `json:"accepting_new_patients"`
	Languages            []string `json:"languages"`
	InsuranceAccepted    []string `json:"insurance_accepted"`
	LicenseNumber        string   `json:"license_number"`
}
