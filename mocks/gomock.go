package mocks

//go:generate mockgen -source=./../orchestrator/modules/state/state.go -destination=./moduleMocks/state_mock.go -package=moduleMocks
//go:generate mockgen -source=./../orchestrator/modules/otpguard/otpguard.go -destination=./moduleMocks/otpguard_mock.go -package=moduleMocks
//go:generate mockgen -source=./../orchestrator/repositories/session/session.go -destination=./repoMocks/session_mock.go -package=repoMocks
//go:generate mockgen -source=./../orchestrator/repositories/ledger/ledger.go -destination=./repoMocks/ledger_mock.go -package=repoMocks
//go:generate mockgen -source=./../authority/client.go -destination=./authorityMocks/authority_mock.go -package=authorityMocks
//go:generate mockgen -source=./../envelope/client.go -destination=./envelopeMocks/envelope_mock.go -package=envelopeMocks
//go:generate mockgen -source=./../kyc/client.go -destination=./kycMocks/kyc_mock.go -package=kycMocks
//go:generate mockgen -source=./../journal/types.go -destination=./journalMocks/journal_mock.go -package=journalMocks
//go:generate mockgen -source=./../orchestrator/services/placement/placement.go -destination=./serviceMocks/placement_mock.go -package=serviceMocks
//go:generate mockgen -source=./../orchestrator/services/artifact/artifact.go -destination=./serviceMocks/artifact_mock.go -package=serviceMocks
//go:generate mockgen -source=./../orchestrator/services/workflow/workflow.go -destination=./serviceMocks/workflow_mock.go -package=serviceMocks
