package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomot-academy/bitacora-core/internal/core/domain"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driven/mocks"
	"github.com/gomot-academy/bitacora-core/internal/core/ports/driving"
	"github.com/gomot-academy/bitacora-core/internal/runtime"
)

const tutorReplyJSON = `{"message":"¿Qué observaste cuando el hielo tocó el agua?","interaction_type":"evidence_probe","cognitive_dimension":"observacion","intervention_strategy":"pregunta guiada"}`

type tutorFixture struct {
	attempts     *mocks.MockAttemptStore
	interactions *mocks.MockInteractionStore
	profiles     *mocks.MockProfileStore
	chunks       *mocks.MockChunkStore
	chat         *mocks.MockChat
	lock         *mocks.MockAttemptLock
	services     *runtime.Services
	svc          driving.TutorService
}

func newTutorFixture(t *testing.T) *tutorFixture {
	t.Helper()

	f := &tutorFixture{
		attempts:     mocks.NewMockAttemptStore(),
		interactions: mocks.NewMockInteractionStore(),
		profiles:     mocks.NewMockProfileStore(),
		chunks:       mocks.NewMockChunkStore(),
		chat:         mocks.NewMockChat(),
		lock:         mocks.NewMockAttemptLock(),
		services:     runtime.NewServices(domain.NewRuntimeConfig("postgres")),
	}
	f.services.SetEmbeddingService(mocks.NewMockEmbedding(8))
	f.services.SetChatService(f.chat)

	f.chunks.SetSearchResults("art-1", []domain.RetrievedChunk{
		{ChunkIndex: 2, Content: "el hielo es menos denso que el agua líquida", Similarity: 0.91},
		{ChunkIndex: 5, Content: "las moléculas forman una red hexagonal", Similarity: 0.78},
	})

	f.svc = NewTutorService(TutorConfig{
		AttemptStore:     f.attempts,
		InteractionStore: f.interactions,
		ProfileStore:     f.profiles,
		Retrieval:        NewRetrievalService(f.chunks, f.services, 0),
		Services:         f.services,
		Lock:             f.lock,
	})

	attempt := &domain.Attempt{
		ID:             "att-1",
		ArticleID:      "art-1",
		StudentID:      "stu-1",
		CurrentSection: "hipotesis",
		Notebook: domain.Notebook{
			Question:   "¿Por qué flota el hielo?",
			Hypotheses: []string{"Porque pesa menos"},
		},
		Status:    domain.AttemptStatusInProgress,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.attempts.Save(context.Background(), attempt))
	return f
}

func TestRespond_PersistsBothTurns(t *testing.T) {
	f := newTutorFixture(t)
	ctx := context.Background()

	f.chat.Script(tutorReplyJSON)
	turn, err := f.svc.Respond(ctx, "att-1", "Creo que el hielo pesa menos")
	require.NoError(t, err)
	assert.Equal(t, domain.InterventionEvidenceProbe, turn.InterventionType)
	assert.Equal(t, domain.DimensionObservacion, turn.CognitiveDimension)
	assert.NotEmpty(t, turn.Message)

	log, err := f.svc.Interactions(ctx, "att-1")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, domain.RoleStudent, log[0].Role)
	assert.Equal(t, "Creo que el hielo pesa menos", log[0].Message)
	assert.Equal(t, domain.RoleTutor, log[1].Role)
	assert.True(t, log[1].CreatedAt.After(log[0].CreatedAt),
		"tutor turn must be timestamped after the student turn")
}

func TestRespond_TwoTurnsAlternateRoles(t *testing.T) {
	f := newTutorFixture(t)
	ctx := context.Background()

	f.chat.Script(tutorReplyJSON)
	f.chat.Script(`{"message":"¿Cómo podrías comprobarlo?","interaction_type":"hypothesis_probe","cognitive_dimension":"experimentacion","intervention_strategy":"diseño de experimento"}`)

	_, err := f.svc.Respond(ctx, "att-1", "primer mensaje")
	require.NoError(t, err)
	_, err = f.svc.Respond(ctx, "att-1", "segundo mensaje")
	require.NoError(t, err)

	log, err := f.svc.Interactions(ctx, "att-1")
	require.NoError(t, err)
	require.Len(t, log, 4)

	wantRoles := []domain.Role{domain.RoleStudent, domain.RoleTutor, domain.RoleStudent, domain.RoleTutor}
	for i, want := range wantRoles {
		assert.Equal(t, want, log[i].Role, "row %d", i)
	}
	for i := 1; i < len(log); i++ {
		assert.True(t, log[i].CreatedAt.After(log[i-1].CreatedAt), "row %d out of order", i)
	}
}

func TestRespond_UsesRetrievedContext(t *testing.T) {
	f := newTutorFixture(t)

	f.chat.Script(tutorReplyJSON)
	turn, err := f.svc.Respond(context.Background(), "att-1", "¿por qué flota?")
	require.NoError(t, err)

	require.Len(t, turn.ChunksUsed, 2)
	assert.Equal(t, 2, turn.ChunksUsed[0].ChunkIndex)
	assert.InDelta(t, 0.91, turn.ChunksUsed[0].Similarity, 0.001)

	reqs := f.chat.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Messages, 2)
	assert.True(t, reqs[0].JSONResponse)
	assert.Contains(t, reqs[0].Messages[1].Content, "fragmento")
	assert.Contains(t, reqs[0].Messages[1].Content, "red hexagonal")
}

func TestRespond_RetrievalFailureDegrades(t *testing.T) {
	f := newTutorFixture(t)
	f.chunks.SearchErr = errors.New("vector index offline")

	f.chat.Script(tutorReplyJSON)
	turn, err := f.svc.Respond(context.Background(), "att-1", "¿por qué flota?")
	require.NoError(t, err, "a retrieval failure must not fail the turn")
	assert.Empty(t, turn.ChunksUsed)

	log, err := f.svc.Interactions(context.Background(), "att-1")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Empty(t, log[1].ChunksUsed)
}

func TestRespond_CompletionFailureKeepsStudentTurn(t *testing.T) {
	f := newTutorFixture(t)
	f.chat.Err = errors.New("upstream 500")

	_, err := f.svc.Respond(context.Background(), "att-1", "mensaje perdido no, guardado sí")
	require.Error(t, err)

	log, listErr := f.interactions.ListByAttempt(context.Background(), "att-1")
	require.NoError(t, listErr)
	require.Len(t, log, 1, "the student turn must survive a completion failure")
	assert.Equal(t, domain.RoleStudent, log[0].Role)
}

func TestRespond_ChatUnavailable(t *testing.T) {
	f := newTutorFixture(t)
	f.services.SetChatService(nil)

	_, err := f.svc.Respond(context.Background(), "att-1", "hola")
	require.ErrorIs(t, err, domain.ErrChatUnavailable)

	log, listErr := f.interactions.ListByAttempt(context.Background(), "att-1")
	require.NoError(t, listErr)
	assert.Len(t, log, 1)
}

func TestRespond_MalformedReplyFallsBack(t *testing.T) {
	f := newTutorFixture(t)

	f.chat.Script("Esto no es JSON, solo texto del modelo.")
	turn, err := f.svc.Respond(context.Background(), "att-1", "hola tutor")
	require.NoError(t, err)

	assert.Equal(t, "Esto no es JSON, solo texto del modelo.", turn.Message)
	assert.True(t, turn.InterventionType.Valid(),
		"fallback classification must produce a known intervention type")
}

func TestRespond_UnknownInterventionTypeReclassified(t *testing.T) {
	f := newTutorFixture(t)

	f.chat.Script(`{"message":"respuesta","interaction_type":"dame_la_respuesta","cognitive_dimension":"observacion"}`)
	turn, err := f.svc.Respond(context.Background(), "att-1", "hola")
	require.NoError(t, err)
	assert.True(t, turn.InterventionType.Valid())
}

func TestRespond_AttemptBusy(t *testing.T) {
	f := newTutorFixture(t)
	ctx := context.Background()

	acquired, err := f.lock.Acquire(ctx, "att-1", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = f.svc.Respond(ctx, "att-1", "mensaje concurrente")
	require.ErrorIs(t, err, domain.ErrAttemptBusy)

	log, listErr := f.interactions.ListByAttempt(ctx, "att-1")
	require.NoError(t, listErr)
	assert.Empty(t, log, "a rejected turn must persist nothing")
}

func TestRespond_ReleasesLock(t *testing.T) {
	f := newTutorFixture(t)

	f.chat.Script(tutorReplyJSON)
	_, err := f.svc.Respond(context.Background(), "att-1", "hola")
	require.NoError(t, err)
	assert.False(t, f.lock.Held("att-1"))

	// Also released on failure paths
	f.chat.Err = errors.New("boom")
	_, err = f.svc.Respond(context.Background(), "att-1", "hola otra vez")
	require.Error(t, err)
	assert.False(t, f.lock.Held("att-1"))
}

func TestRespond_BlankMessage(t *testing.T) {
	f := newTutorFixture(t)

	_, err := f.svc.Respond(context.Background(), "att-1", "   \n")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRespond_UnknownAttempt(t *testing.T) {
	f := newTutorFixture(t)

	_, err := f.svc.Respond(context.Background(), "att-404", "hola")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRespond_WindowsLongHistory(t *testing.T) {
	f := newTutorFixture(t)
	ctx := context.Background()

	// Seed a long prior conversation directly in the store
	for i := 0; i < 20; i++ {
		role := domain.RoleStudent
		if i%2 == 1 {
			role = domain.RoleTutor
		}
		require.NoError(t, f.interactions.Save(ctx, &domain.Interaction{
			AttemptID: "att-1",
			Role:      role,
			Message:   "turno antiguo",
		}))
	}

	f.chat.Script(tutorReplyJSON)
	_, err := f.svc.Respond(ctx, "att-1", "mensaje nuevo")
	require.NoError(t, err)

	reqs := f.chat.Requests()
	require.Len(t, reqs, 1)
	prompt := reqs[0].Messages[1].Content
	turns := strings.Count(prompt, "turno antiguo")
	assert.LessOrEqual(t, turns, historyWindow, "prompt must window the history")
	assert.Less(t, turns, 20, "prompt must not include the full log")
}

func TestInteractions_UnknownAttempt(t *testing.T) {
	f := newTutorFixture(t)

	_, err := f.svc.Interactions(context.Background(), "att-404")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
