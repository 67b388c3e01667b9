// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PasswordOptions configures the password generator.
type PasswordOptions struct {
	Length            int  `json:"length"`
	IncludeLetters    bool `json:"include_letters"`
	IncludeNumbers    bool `json:"include_numbers"`
	IncludeSymbols    bool `json:"include_symbols"`
	ExcludeLookAlikes bool `json:"exclude_look_alikes"`
}

// GeneratedPassword is the generator response.
type GeneratedPassword struct {
	Password string `json:"password"`
	Strength int    `json:"strength"`
	Label    string `json:"label"`
}
