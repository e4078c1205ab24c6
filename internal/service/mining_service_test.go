package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minerops/internal/model"
	smodel "minerops/pkg/store/mysql/model"
)

func TestStartMiningActivatesConfig(t *testing.T) {
	store := newMemConfigStore(&smodel.MiningConfig{ID: 1, Name: "night shift", Coin: "ETH"})
	mining := &stubMining{startResult: model.ActionResult{Status: "success"}}
	s := NewMiningService(mining, store)

	result := s.StartMining(context.Background(), 1)

	assert.Equal(t, "success", result.Status)
	cfg, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, cfg.Active)
}

func TestStartMiningUnknownConfig(t *testing.T) {
	s := NewMiningService(&stubMining{}, newMemConfigStore())

	result := s.StartMining(context.Background(), 99)

	assert.Equal(t, "error", result.Status)
	assert.NotEmpty(t, result.Error)
}

func TestStartMiningAlreadyActive(t *testing.T) {
	store := newMemConfigStore(&smodel.MiningConfig{ID: 1, Coin: "ETH", Active: true})
	s := NewMiningService(&stubMining{startResult: model.ActionResult{Status: "success"}}, store)

	result := s.StartMining(context.Background(), 1)

	assert.Equal(t, "error", result.Status)
}

func TestStartMiningRollsBackOnConnectorError(t *testing.T) {
	store := newMemConfigStore(&smodel.MiningConfig{ID: 1, Coin: "ETH"})
	mining := &stubMining{startResult: model.ActionResult{Status: "error", Error: "rig offline"}}
	s := NewMiningService(mining, store)

	result := s.StartMining(context.Background(), 1)

	assert.Equal(t, "error", result.Status)
	cfg, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, cfg.Active, "active flag must roll back when start fails")
}

func TestStopMiningDeactivatesConfig(t *testing.T) {
	store := newMemConfigStore(&smodel.MiningConfig{ID: 1, Coin: "ETH", Active: true})
	s := NewMiningService(&stubMining{stopResult: model.ActionResult{Status: "success"}}, store)

	result := s.StopMining(context.Background(), 1)

	assert.Equal(t, "success", result.Status)
	cfg, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, cfg.Active)
}

func TestStopMiningInactiveConfig(t *testing.T) {
	store := newMemConfigStore(&smodel.MiningConfig{ID: 1, Coin: "ETH"})
	s := NewMiningService(&stubMining{stopResult: model.ActionResult{Status: "success"}}, store)

	result := s.StopMining(context.Background(), 1)

	assert.Equal(t, "error", result.Status)
}
