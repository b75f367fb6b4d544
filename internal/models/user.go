package models

// UserProfile is the single profile resident on the device.
type UserProfile struct {
	ID                     string   `json:"id"`
	Email                  string   `json:"email"`
	FirstName              string   `json:"firstName"`
	LastName               string   `json:"lastName"`
	HasCompletedOnboarding bool     `json:"hasCompletedOnboarding"`
	OnboardingGoals        []string `json:"onboardingGoals"`
	Attribution            string   `json:"attribution"`
	AgeRange               string   `json:"ageRange"`
	LifeStage              string   `json:"lifeStage"`
	CurrentStruggles       []string `json:"currentStruggles"`
	CreatedAt              int64    `json:"createdAt"`
}

// ProfileUpdate carries a partial profile. Nil fields are left untouched.
// ID and CreatedAt are not updatable.
type ProfileUpdate struct {
	Email                  *string   `json:"email,omitempty"`
	FirstName              *string   `json:"firstName,omitempty"`
	LastName               *string   `json:"lastName,omitempty"`
	HasCompletedOnboarding *bool     `json:"hasCompletedOnboarding,omitempty"`
	OnboardingGoals        *[]string `json:"onboardingGoals,omitempty"`
	Attribution            *string   `json:"attribution,omitempty"`
	AgeRange               *string   `json:"ageRange,omitempty"`
	LifeStage              *string   `json:"lifeStage,omitempty"`
	CurrentStruggles       *[]string `json:"currentStruggles,omitempty"`
}

// Apply merges the non-nil fields of u into p and returns the result.
func (u ProfileUpdate) Apply(p UserProfile) UserProfile {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.FirstName != nil {
		p.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		p.LastName = *u.LastName
	}
	if u.HasCompletedOnboarding != nil {
		p.HasCompletedOnboarding = *u.HasCompletedOnboarding
	}
	if u.OnboardingGoals != nil {
		p.OnboardingGoals = append([]string{}, (*u.OnboardingGoals)...)
	}
	if u.Attribution != nil {
		p.Attribution = *u.Attribution
	}
	if u.AgeRange != nil {
		p.AgeRange = *u.AgeRange
	}
	if u.LifeStage != nil {
		p.LifeStage = *u.LifeStage
	}
	if u.CurrentStruggles != nil {
		p.CurrentStruggles = append([]string{}, (*u.CurrentStruggles)...)
	}
	return p
}

// Clone returns a deep copy of p.
func (p UserProfile) Clone() UserProfile {
	c := p
	c.OnboardingGoals = cloneStrings(p.OnboardingGoals)
	c.CurrentStruggles = cloneStrings(p.CurrentStruggles)
	return c
}
