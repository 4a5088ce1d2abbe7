package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/application/services"
	"storyspark-api/config"
	"storyspark-api/infrastructure/adapters"
	"storyspark-api/infrastructure/catalog"
	"storyspark-api/infrastructure/gin_interface/controllers"
	"storyspark-api/middleware"
	mockproviders "storyspark-api/mock"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on the environment")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}
	workerPool, err := ants.NewPool(120, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	useMocks := os.Getenv("USE_MOCK_PROVIDERS") == "true"

	var textProvider outbound.TextProviderPort
	var speechProvider outbound.SpeechProviderPort
	var clipStore outbound.ClipStorePort
	var audioStore outbound.AudioStorePort

	if useMocks {
		zeroLogger.Warn("Running with mock providers and in-memory stores")
		textProvider = mockproviders.NewTextProvider(200 * time.Millisecond)
		speechProvider = mockproviders.NewSpeechProvider(200 * time.Millisecond)
		clipStore = adapters.NewMemoryClipStore()
		audioStore = adapters.NewMemoryAudioStore()
	} else {
		llmConfig, err := config.GetLLMConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get llm config")
		}
		elevenLabsConfig, err := config.GetElevenLabsConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get eleven labs config")
		}
		dynamoConfig, err := config.GetDynamoConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get dynamo config")
		}
		s3Config, err := config.GetS3Config()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to get s3 config")
		}

		sess := session.Must(session.NewSessionWithOptions(session.Options{
			SharedConfigState: session.SharedConfigEnable,
		}))

		contentFetcher := adapters.NewContentFetcher(zeroLogger)
		textProvider = adapters.NewOpenAITextProvider(llmConfig, zeroLogger)
		speechProvider = adapters.NewElevenLabsSpeechProvider(contentFetcher, elevenLabsConfig)
		clipStore = adapters.NewDynamoClipStore(zeroLogger, dynamodb.New(sess), dynamoConfig)
		audioStore = adapters.NewS3AudioStore(s3.New(sess), s3Config)
	}

	contentCatalog := catalog.NewSeeded()
	childRegistry := adapters.NewMemoryChildRegistry()

	scriptWriter := services.NewScriptWriter(zeroLogger, textProvider)
	safetyReviewer := services.NewSafetyReviewer(zeroLogger, textProvider)
	sceneDirector := services.NewSceneDirector(zeroLogger, textProvider)
	voiceMapper := services.NewVoiceMapper(zeroLogger)

	progressHub := services.NewProgressHub()

	pipeline := services.NewClipPipelineOrchestrator(zeroLogger, clipStore, contentCatalog, childRegistry,
		scriptWriter, safetyReviewer, sceneDirector, voiceMapper, speechProvider, audioStore,
		progressHub, workerPool, pipelineConfig)

	clipService := services.NewClipService(zeroLogger, clipStore, contentCatalog, childRegistry,
		pipeline, progressHub, workerPool)

	swept, err := clipService.RecoverInterrupted(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("Startup recovery sweep failed")
	}
	if swept > 0 {
		log.Info().Int("count", swept).Msg("Marked interrupted clips as failed")
	}

	router := gin.Default()
	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}
	router.Use(middleware.RequestLogger(zeroLogger))

	controllers.NewClipsController(zeroLogger, clipService, audioStore).RegisterRoutes(router)
	controllers.NewCatalogController(contentCatalog).RegisterRoutes(router)
	controllers.NewChildrenController(zeroLogger, childRegistry).RegisterRoutes(router)

	if err := router.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}
