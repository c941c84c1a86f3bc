package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nigamshah29/TokenCrowdsale/internal/domain"
)

func TestNewSession_HasEveryField(t *testing.T) {
	s := NewSession()
	for _, form := range FormNames() {
		for _, field := range FieldNames(form) {
			value, ok := s.Forms[form][field]
			assert.True(t, ok, "%s.%s", form, field)
			assert.Empty(t, value)
		}
	}
	assert.Empty(t, s.ErrorMsg)
	assert.Empty(t, s.Results)
}

func TestSession_SetField(t *testing.T) {
	s := NewSession()

	require.NoError(t, s.SetField(FormPublishCrowdsale, FieldTokenAddress, "0xAA"))
	assert.Equal(t, "0xAA", s.Field(FormPublishCrowdsale, FieldTokenAddress))
	assert.Empty(t, s.Field(FormPublishToken, FieldPublishedAddress))

	assert.ErrorIs(t, s.SetField(FormPublishToken, FieldTokenAddress, "0xAA"), domain.ErrUnknownFormField)
	assert.ErrorIs(t, s.SetField("otherForm", FieldPublishedTx, "0xBB"), domain.ErrUnknownFormField)
	assert.Empty(t, s.Field("otherForm", FieldPublishedTx))
}

func TestSession_Normalize(t *testing.T) {
	s := &Session{Forms: map[string]Form{
		FormPublishToken: {FieldPublishedTx: "0xBB"},
	}}
	s.Normalize()

	assert.Equal(t, "0xBB", s.Field(FormPublishToken, FieldPublishedTx))
	assert.Contains(t, s.Forms[FormPublishToken], FieldPublishedAddress)
	assert.Contains(t, s.Forms[FormPublishCrowdsale], FieldTokenAddress)
	assert.NotNil(t, s.Results)
}

func TestSession_Reset(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.SetField(FormPublishToken, FieldPublishedTx, "0xBB"))
	s.ErrorMsg = "boom"
	s.Results[StepToken] = &DeploymentResult{State: StateConfirmed}

	s.Reset()
	assert.Empty(t, s.Field(FormPublishToken, FieldPublishedTx))
	assert.Empty(t, s.ErrorMsg)
	assert.Empty(t, s.Results)
}

func TestFieldNames_Copy(t *testing.T) {
	names := FieldNames(FormPublishCrowdsale)
	require.Equal(t, []string{FieldTokenAddress, FieldPublishedTx, FieldPublishedAddress}, names)
	names[0] = "changed"
	assert.Equal(t, FieldTokenAddress, FieldNames(FormPublishCrowdsale)[0])
}
