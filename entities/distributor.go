package entities

import "time"

type Distributor struct {
	DistributorID  uint   `gorm:"primaryKey" json:"distributor_id"`
	Name           string `json:"name"`
	ContactPerson  string `json:"contactPerson"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	SeedsAvailable string `json:"seedsAvailable"`
	PostedBy       string `gorm:"index" json:"postedBy"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
