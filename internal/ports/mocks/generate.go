//go:generate mockgen -source=../dequeuer.go           -destination=./mock_dequeuer.go           -package=mocks
//go:generate mockgen -source=../session.go            -destination=./mock_session.go            -package=mocks
//go:generate mockgen -source=../sleeper.go            -destination=./mock_sleeper.go            -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks
//go:generate mockgen -source=../message_repository.go -destination=./mock_message_repository.go -package=mocks
//go:generate mockgen -source=../message_cache.go      -destination=./mock_message_cache.go      -package=mocks
//go:generate mockgen -source=../validator.go          -destination=./mock_validator.go          -package=mocks
//go:generate mockgen -source=../message_processor.go  -destination=./mock_message_processor.go  -package=mocks
//go:generate mockgen -source=../message_read_service.go -destination=./mock_message_read_service.go -package=mocks
//go:generate mockgen -source=../consumer_status.go    -destination=./mock_consumer_status.go    -package=mocks

package mocks
