package main

import (
	"net/http"

	"github.com/gorilla/securecookie"
)

const (
	formCookieName   = "retail_calculator_form"
	formCookieMaxAge = 365 * 24 * 60 * 60
)

// formState is the raw text of the calculator fields, kept in the browser
// between visits.
type formState struct {
	Quantity     string `json:"quantity"`
	PricePerItem string `json:"pricePerItem"`
	Region       string `json:"region"`
}

type formStore struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// newFormStore signs cookies with secret. An empty secret gets a random
// per-process key, which drops saved forms on restart.
func newFormStore(secret []byte, secure bool) *formStore {
	if len(secret) == 0 {
		secret = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(secret, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	codec.MaxAge(formCookieMaxAge)
	return &formStore{codec: codec, secure: secure}
}

// load returns the saved state, or an empty one when there is no cookie or
// it fails verification.
func (f *formStore) load(r *http.Request) formState {
	cookie, err := r.Cookie(formCookieName)
	if err != nil {
		return formState{}
	}

	var state formState
	if err := f.codec.Decode(formCookieName, cookie.Value, &state); err != nil {
		return formState{}
	}
	return state
}

func (f *formStore) save(w http.ResponseWriter, state formState) error {
	value, err := f.codec.Encode(formCookieName, state)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     formCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   formCookieMaxAge,
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
