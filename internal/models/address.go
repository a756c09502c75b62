package models

// AddressBook is a delivery address owned one-to-one by a user or a shop.
// The ward reference anchors it into the geographic hierarchy used for
// shipping rate lookups.
type AddressBook struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,max=100"`
	Phone         string  `json:"phone" validate:"required,max=20"`
	AddressDetail string  `json:"address_detail" validate:"omitempty,max=255"`
	WardCode      *string `json:"ward_code,omitempty" gorm:"type:varchar(20)"`
	Ward          *Ward   `json:"ward,omitempty" gorm:"foreignKey:WardCode"`
}

// District returns the district of this address, or nil when the
// geographic chain is incomplete.
func (a *AddressBook) District() *District {
	if a == nil || a.Ward == nil {
		return nil
	}
	return a.Ward.District
}

// Ward is the smallest geographic unit. Reference data, consumed read-only.
type Ward struct {
	Code         string    `json:"code" gorm:"primaryKey;type:varchar(20)"`
	FullName     string    `json:"full_name"`
	DistrictCode string    `json:"district_code" gorm:"type:varchar(20);index"`
	District     *District `json:"district,omitempty" gorm:"foreignKey:DistrictCode"`
}

// District groups wards inside a province. Its code is what the shipping
// carrier prices by.
type District struct {
	Code         string    `json:"code" gorm:"primaryKey;type:varchar(20)"`
	FullName     string    `json:"full_name"`
	ProvinceCode string    `json:"province_code" gorm:"type:varchar(20);index"`
	Province     *Province `json:"province,omitempty" gorm:"foreignKey:ProvinceCode"`
}

// Province is the top of the geographic hierarchy.
type Province struct {
	Code     string `json:"code" gorm:"primaryKey;type:varchar(20)"`
	FullName string `json:"full_name"`
}
