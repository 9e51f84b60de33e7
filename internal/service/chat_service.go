// FILE: internal/service/chat_service.go
package service

import (
	"context"
	"time"

	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/pkg/apperrors"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/internal/repository/unitofwork"
	"rbac-chatbot-be/pkg/authz"
	"rbac-chatbot-be/pkg/llm"
	"rbac-chatbot-be/pkg/rag"
	"rbac-chatbot-be/pkg/rag/prompt"
	"rbac-chatbot-be/pkg/rag/response"
	"rbac-chatbot-be/pkg/session"

	"github.com/google/uuid"
)

type IChatService interface {
	Chat(ctx context.Context, identity *entity.Identity, req *dto.ChatRequest) (*dto.ChatResponse, error)
	History(ctx context.Context, identity *entity.Identity, sessionId string) (*dto.ChatHistoryResponse, error)
	ClearHistory(ctx context.Context, identity *entity.Identity, sessionId string) error
	AccessiblePartitions(identity *entity.Identity) *dto.PartitionsResponse
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	policy      *authz.Policy
	retriever   *rag.Retriever
	llmProvider llm.LLMProvider
	sessions    session.Store
	logger      logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	policy *authz.Policy,
	retriever *rag.Retriever,
	llmProvider llm.LLMProvider,
	sessions session.Store,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		policy:      policy,
		retriever:   retriever,
		llmProvider: llmProvider,
		sessions:    sessions,
		logger:      sysLogger,
	}
}

// Chat answers a question against one partition's knowledge base.
//
// The order is load bearing: the policy check runs before anything touches
// the registry, on the same normalized partition name the registry lookup
// uses, so no spelling or casing of the partition can slip past
// authorization.
func (cs *chatService) Chat(ctx context.Context, identity *entity.Identity, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	partition := authz.NormalizePartition(req.Partition)

	// 1. Authorization. Checked on every request, never per session.
	if !cs.policy.IsAuthorized(identity.Role, partition) {
		cs.logger.Warn("chat", "partition access denied", map[string]interface{}{
			"username":  identity.Username,
			"role":      identity.Role,
			"partition": partition,
		})
		return nil, &apperrors.ForbiddenError{Role: string(identity.Role), Partition: partition}
	}

	// 2. Resolve the partition's active index.
	uow := cs.uowFactory.NewUnitOfWork(ctx)
	index, err := uow.PartitionIndexRepository().FindByName(ctx, partition)
	if err != nil {
		cs.logger.Error("chat", "partition index lookup failed", map[string]interface{}{
			"partition": partition,
			"error":     err.Error(),
		})
		return nil, apperrors.Internal("resolve partition index", err)
	}
	if index == nil {
		return nil, &apperrors.PartitionNotFoundError{Partition: partition}
	}

	// 3. Retrieve, scoped to this partition's active generation only.
	results, err := cs.retriever.Execute(ctx, uow.ChunkRepository(), partition, index.ActiveVersion, req.Message)
	if err != nil {
		cs.logger.Error("chat", "retrieval failed", map[string]interface{}{
			"partition": partition,
			"error":     err.Error(),
		})
		return nil, apperrors.Internal("retrieve chunks", err)
	}

	sessionId := req.SessionId
	if sessionId == "" {
		sessionId = uuid.New().String()
	}

	// 4. Empty context short-circuits to the canned answer; the generation
	// collaborator is never called.
	if len(results) == 0 {
		cs.recordTurns(ctx, ownedSessionKey(identity.Username, sessionId), req.Message, response.NoInformationAnswer)
		return &dto.ChatResponse{
			Response:  response.NoInformationAnswer,
			SessionId: sessionId,
		}, nil
	}

	// 5. Grounded generation.
	answer, err := cs.llmProvider.Generate(ctx, prompt.BuildGrounded(req.Message, results), llm.WithTemperature(0.5))
	if err != nil {
		cs.logger.Error("chat", "generation failed", map[string]interface{}{
			"partition": partition,
			"error":     err.Error(),
		})
		return nil, apperrors.Internal("generate answer", err)
	}

	cs.recordTurns(ctx, ownedSessionKey(identity.Username, sessionId), req.Message, answer)

	sources := make([]dto.SourceDTO, 0, len(results))
	for _, res := range results {
		sources = append(sources, dto.SourceDTO{Source: res.Source, Score: res.Score})
	}

	return &dto.ChatResponse{
		Response:  answer,
		Sources:   sources,
		SessionId: sessionId,
	}, nil
}

// ownedSessionKey scopes a session id to the user who created it. Every read
// and write of history goes through this key, so a caller supplying another
// user's session id can only ever reach their own (empty) session, never turns
// derived from a partition their role is denied.
func ownedSessionKey(username, sessionId string) string {
	return username + ":" + sessionId
}

// recordTurns appends the exchange to the session history. Best effort: a
// dead session store must not fail the answer that was already produced.
func (cs *chatService) recordTurns(ctx context.Context, sessionKey, question, answer string) {
	now := time.Now()
	err := cs.sessions.Append(ctx, sessionKey,
		session.Turn{Role: "user", Content: question, CreatedAt: now},
		session.Turn{Role: "assistant", Content: answer, CreatedAt: now},
	)
	if err != nil {
		cs.logger.Warn("chat", "failed to record session turns", map[string]interface{}{
			"session_key": sessionKey,
			"error":       err.Error(),
		})
	}
}

func (cs *chatService) History(ctx context.Context, identity *entity.Identity, sessionId string) (*dto.ChatHistoryResponse, error) {
	turns, err := cs.sessions.History(ctx, ownedSessionKey(identity.Username, sessionId))
	if err != nil {
		return nil, apperrors.Internal("load session history", err)
	}

	out := make([]dto.ChatTurnDTO, 0, len(turns))
	for _, turn := range turns {
		out = append(out, dto.ChatTurnDTO{
			Role:      turn.Role,
			Content:   turn.Content,
			CreatedAt: turn.CreatedAt,
		})
	}
	return &dto.ChatHistoryResponse{SessionId: sessionId, Turns: out}, nil
}

// ClearHistory drops the requester's own session. Clearing an id that belongs
// to someone else is a no-op on their data for the same reason History cannot
// read it.
func (cs *chatService) ClearHistory(ctx context.Context, identity *entity.Identity, sessionId string) error {
	if err := cs.sessions.Clear(ctx, ownedSessionKey(identity.Username, sessionId)); err != nil {
		return apperrors.Internal("clear session history", err)
	}
	return nil
}

// AccessiblePartitions reports the requester's own access set, nothing more.
func (cs *chatService) AccessiblePartitions(identity *entity.Identity) *dto.PartitionsResponse {
	return &dto.PartitionsResponse{
		Role:       string(identity.Role),
		Partitions: cs.policy.AccessibleSet(identity.Role),
	}
}
