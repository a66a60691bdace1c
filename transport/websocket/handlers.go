package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Thechiragji/THECHIRAGGAME/internal/advisor"
	"github.com/Thechiragji/THECHIRAGGAME/internal/apperror"
	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

func (that *Server) handleConnect(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handleConnect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	client := payloadReq.Client
	if client == nil || client.ID == "" {
		client = &Client{ID: generateClientID()}
	}

	tally, err := that.scores.GetTally(ctx, client.ID)
	if err != nil {
		log.Error("failed to get tally", "clientID", client.ID, "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to load the scoreboard")
	}

	payloadResp := Payload{
		Client: client,
		Tally:  tally,
	}

	if err = that.sendMessage(c, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected client", "clientID", client.ID)

	return nil
}

func (that *Server) handleNewSession(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handleNewSession")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Client == nil {
		log.Error("Client is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Client is required")
	}

	mode := payloadReq.Mode
	if mode == "" {
		mode = entity.ModeTwoPlayer
	}

	session, err := that.sessions.CreateSession(ctx, payloadReq.Client.ID, mode)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to create a new session")
	}

	log.Info("session created", "sessionID", session.ID, "mode", session.Mode)

	payloadResp := Payload{
		Client:  payloadReq.Client,
		Session: session,
	}

	if err = that.sendMessage(c, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleSessionTurn(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handleSessionTurn")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session == nil {
		log.Error("Session is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Session is required")
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Cell is required")
	}

	sessionID := payloadReq.Session.ID
	log = log.With("sessionID", sessionID)

	session, err := that.sessions.MakeTurn(ctx, sessionID, payloadReq.Mark, *payloadReq.Cell)
	if err != nil {
		// an illegal move is recoverable: report it and leave the board as is
		log.Warn("turn rejected", "error", err)
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	if err = that.sendSessionUpdate(ctx, c, msg.Action, session); err != nil {
		return err
	}

	if session.IsInProgress() && session.IsVsComputer() {
		that.scheduleAdvisorTurn(ctx, c, sessionID, session.TurnsPlayed)
	}

	return nil
}

func (that *Server) handleSessionReset(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handleSessionReset")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session == nil {
		log.Error("Session is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Session is required")
	}

	// a pending computer move must never land on a reset board
	that.scheduler.Cancel(payloadReq.Session.ID)

	session, err := that.sessions.ResetSession(ctx, payloadReq.Session.ID)
	if err != nil {
		log.Error("failed to reset session", "error", err)
		return that.sendErrorResponse(c, msg.Action, "failed to reset the session")
	}

	payloadResp := Payload{
		Session: session,
	}

	if err = that.sendMessage(c, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

func (that *Server) handleSessionMode(ctx context.Context, msg *Message, c *conn) error {
	log := that.logger.With("method", "handleSessionMode")

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.Session == nil {
		log.Error("Session is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Session is required")
	}

	if payloadReq.Mode == "" {
		log.Error("Mode is missing in payload")
		return that.sendErrorResponse(c, msg.Action, "Mode is required")
	}

	// mode switch resets the match, so the pending computer move is stale
	that.scheduler.Cancel(payloadReq.Session.ID)

	session, err := that.sessions.SwitchMode(ctx, payloadReq.Session.ID, payloadReq.Mode)
	if err != nil {
		log.Error("failed to switch mode", "error", err)
		return that.sendErrorResponse(c, msg.Action, err.Error())
	}

	payloadResp := Payload{
		Session: session,
	}

	if err = that.sendMessage(c, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}

// scheduleAdvisorTurn - queues the computer's reply after the pacing delay.
// turnsPlayed pins the move to the board it was scheduled for; the service
// refuses the move if the session was reset or replaced in the meantime,
// even when the timer slips past a Cancel.
func (that *Server) scheduleAdvisorTurn(ctx context.Context, c *conn, sessionID string, turnsPlayed int) {
	c.trackSession(sessionID)

	that.scheduler.Schedule(sessionID, that.advisorDelay, func() {
		that.playAdvisorTurn(ctx, c, sessionID, turnsPlayed)
	})
}

func (that *Server) playAdvisorTurn(ctx context.Context, c *conn, sessionID string, turnsPlayed int) {
	log := that.logger.With("method", "playAdvisorTurn", "sessionID", sessionID)

	session, cell, err := that.sessions.AdvisorTurn(ctx, sessionID, turnsPlayed)
	if errors.Is(err, apperror.ErrMatchFinished) ||
		errors.Is(err, apperror.ErrStaleMove) ||
		errors.Is(err, advisor.ErrNoMoveAvailable) {
		// the match ended or moved on between scheduling and firing
		return
	}

	if err != nil {
		log.Error("advisor turn failed", "error", err)
		return
	}

	payloadResp := Payload{
		Session: session,
		Mark:    session.Board[cell],
		Cell:    &cell,
	}

	if session.IsFinished() && session.ClientID != "" {
		tally, tallyErr := that.scores.GetTally(ctx, session.ClientID)
		if tallyErr != nil {
			log.Error("failed to get tally", "error", tallyErr)
		} else {
			payloadResp.Tally = tally
		}
	}

	if err = that.sendMessage(c, "session:turn", payloadResp); err != nil {
		log.Error("failed to send advisor turn", "error", err)
	}
}

// sendSessionUpdate - replies with the session and, when the match just
// finished, the refreshed tally for the scoreboard.
func (that *Server) sendSessionUpdate(ctx context.Context, c *conn, action string, session *entity.Match) error {
	log := that.logger.With("method", "sendSessionUpdate", "sessionID", session.ID)

	payloadResp := Payload{
		Session: session,
	}

	if session.IsFinished() && session.ClientID != "" {
		tally, err := that.scores.GetTally(ctx, session.ClientID)
		if err != nil {
			log.Error("failed to get tally", "error", err)
		} else {
			payloadResp.Tally = tally
		}
	}

	if err := that.sendMessage(c, action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	return nil
}
