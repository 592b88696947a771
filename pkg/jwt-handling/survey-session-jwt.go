package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SurveySessionClaims identifies one activated survey session.
type SurveySessionClaims struct {
	InstanceID string `json:"instance_id,omitempty"`
	SurveyKey  string `json:"survey_key,omitempty"`
	jwt.RegisteredClaims
}

func GenerateSurveySessionToken(
	expiresIn time.Duration,
	sessionID string,
	instanceID string,
	surveyKey string,
	secretKey string,
) (tokenString string, err error) {
	claims := SurveySessionClaims{
		instanceID,
		surveyKey,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   sessionID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidateSurveySessionToken(tokenString string, secretKey string) (claims *SurveySessionClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &SurveySessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*SurveySessionClaims)
	valid = valid && token.Valid
	return
}
