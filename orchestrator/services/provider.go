package services

import (
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/authority"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/envelope"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/journal"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/kyc"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/logger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/otpguard"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/modules/state"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/ledger"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/repositories/session"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/artifact"
	"github.com/Malcan-Technologies/creditxpress-aws-sub009/orchestrator/services/placement"
)

// ServiceProvider carries every shared dependency of the orchestrator.
// The daemon fills it once at startup; tests fill only what they exercise.
type ServiceProvider struct {
	logger      logger.Logger
	state       state.State
	sessionRepo session.SessionRepo
	ledgerRepo  ledger.LedgerRepo
	journal     journal.Journal
	otpGuard    otpguard.Guard
	authority   authority.Service
	envelope    envelope.Service
	kyc         kyc.Service
	placement   placement.PlacementService
	artifacts   artifact.Store
}

func (sp *ServiceProvider) GetLogger() logger.Logger {
	return sp.logger
}

func (sp *ServiceProvider) SetLogger(l logger.Logger) {
	sp.logger = l
}

func (sp *ServiceProvider) GetState() state.State {
	return sp.state
}

func (sp *ServiceProvider) SetState(s state.State) {
	sp.state = s
}

func (sp *ServiceProvider) GetSessionRepo() session.SessionRepo {
	return sp.sessionRepo
}

func (sp *ServiceProvider) SetSessionRepo(r session.SessionRepo) {
	sp.sessionRepo = r
}

func (sp *ServiceProvider) GetLedgerRepo() ledger.LedgerRepo {
	return sp.ledgerRepo
}

func (sp *ServiceProvider) SetLedgerRepo(r ledger.LedgerRepo) {
	sp.ledgerRepo = r
}

func (sp *ServiceProvider) GetJournal() journal.Journal {
	return sp.journal
}

func (sp *ServiceProvider) SetJournal(j journal.Journal) {
	sp.journal = j
}

func (sp *ServiceProvider) GetOTPGuard() otpguard.Guard {
	return sp.otpGuard
}

func (sp *ServiceProvider) SetOTPGuard(g otpguard.Guard) {
	sp.otpGuard = g
}

func (sp *ServiceProvider) GetAuthority() authority.Service {
	return sp.authority
}

func (sp *ServiceProvider) SetAuthority(a authority.Service) {
	sp.authority = a
}

func (sp *ServiceProvider) GetEnvelope() envelope.Service {
	return sp.envelope
}

func (sp *ServiceProvider) SetEnvelope(e envelope.Service) {
	sp.envelope = e
}

func (sp *ServiceProvider) GetKYC() kyc.Service {
	return sp.kyc
}

func (sp *ServiceProvider) SetKYC(k kyc.Service) {
	sp.kyc = k
}

func (sp *ServiceProvider) GetPlacement() placement.PlacementService {
	return sp.placement
}

func (sp *ServiceProvider) SetPlacement(p placement.PlacementService) {
	sp.placement = p
}

func (sp *ServiceProvider) GetArtifacts() artifact.Store {
	return sp.artifacts
}

func (sp *ServiceProvider) SetArtifacts(a artifact.Store) {
	sp.artifacts = a
}
