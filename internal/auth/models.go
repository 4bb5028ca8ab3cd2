package auth

import "time"

// User is the full stored record. The password hash never serializes;
// every response path relies on the json:"-" tag to strip it.
type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Name             string    `json:"name"`
	Bio              string    `json:"bio"`
	AvatarURL        string    `json:"avatarUrl"`
	Location         string    `json:"location"`
	IsPremium        bool      `json:"isPremium"`
	CountriesVisited int       `json:"countriesVisited"`
	CitiesVisited    int       `json:"citiesVisited"`
	CoworkingVisited int       `json:"coworkingSpacesVisited"`
	CreatedAt        time.Time `json:"createdAt"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Bio      string `json:"bio"`
	Location string `json:"location"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type ProfileUpdate struct {
	Name             *string `json:"name"`
	Bio              *string `json:"bio"`
	AvatarURL        *string `json:"avatarUrl"`
	Location         *string `json:"location"`
	CountriesVisited *int    `json:"countriesVisited"`
	CitiesVisited    *int    `json:"citiesVisited"`
	CoworkingVisited *int    `json:"coworkingSpacesVisited"`
}
