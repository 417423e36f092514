package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "procurement.workflow.v1", cfg.Kafka.WorkflowTopic)
	assert.Equal(t, 3*time.Second, cfg.Kafka.OutboxPollInterval)
	assert.Equal(t, DefaultWorkflow(), cfg.Workflow)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("ESTIMATE_TOTAL_POLICY", "recompute")
	t.Setenv("LINE_ITEM_CREATE_REQUIRES_DRAFT", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.OutboxPollInterval)
	assert.Equal(t, Recompute, cfg.Workflow.EstimateTotalPolicy)
	assert.False(t, cfg.Workflow.LineItemCreateRequiresDraft)
}

func TestValidate(t *testing.T) {
	cfg := &Config{JWT: JWTConfig{Secret: "s3cret"}, Workflow: DefaultWorkflow()}
	assert.NoError(t, cfg.Validate())

	cfg.Workflow.EstimateTotalPolicy = "sometimes"
	assert.Error(t, cfg.Validate())

	cfg.Workflow = DefaultWorkflow()
	cfg.JWT.Secret = " "
	assert.Error(t, cfg.Validate())
}
