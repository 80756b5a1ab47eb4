package handlers

// @title Prompt API
// @version 1.0
// @description Forwards a text prompt to a hosted model on Amazon Bedrock and returns the completion

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8081
// @BasePath /api/v1

// @tag.name generation
// @tag.description Prompt completion operations
