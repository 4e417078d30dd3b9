package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/learnsmart-app/learnsmart-api/internal/container"
	"github.com/learnsmart-app/learnsmart-api/internal/router"
)

var chiLambda *chiadapter.ChiLambda

func init() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		DocumentHandler: c.DocumentContainer.Handler,
		QuizHandler:     c.QuizContainer.Handler,
		SessionHandler:  c.SessionContainer.Handler,
	})

	chiLambda = chiadapter.New(r)
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(handler)
}
