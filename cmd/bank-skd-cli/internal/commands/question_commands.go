package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/turrs/bank-skd/internal/domain/catalog"
	"github.com/turrs/bank-skd/internal/domain/users"
)

// QuestionCommandHandler loads question banks from files
type QuestionCommandHandler struct{}

// questionFile accepts either a bare array or the REST import body
type questionFile struct {
	Questions []*catalog.Question `json:"questions"`
}

// readQuestionFile decodes and validates every question in path for packageID
func readQuestionFile(path, packageID string) ([]*catalog.Question, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var questions []*catalog.Question
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &questions)
	} else {
		var file questionFile
		err = json.Unmarshal(trimmed, &file)
		questions = file.Questions
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%s contains no questions", path)
	}

	for i, q := range questions {
		if q == nil {
			return nil, fmt.Errorf("question %d is empty", i+1)
		}
		q.ID = uuid.NewString()
		q.PackageID = packageID
		q.Position = 0
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return questions, nil
}

// ImportQuestionsCmd appends the questions of a JSON file to a package
func (commandHandler *QuestionCommandHandler) ImportQuestionsCmd(cmd *cobra.Command, _ []string) error {
	packageID, err := cmd.Flags().GetString("package-id")
	if err != nil {
		return fmt.Errorf("invalid package-id flag: %w", err)
	}
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	if _, err := uuid.Parse(packageID); err != nil {
		return fmt.Errorf("package-id must be a UUID: %w", err)
	}

	questions, err := readQuestionFile(inputFilePath, packageID)
	if err != nil {
		return err
	}

	env, err := loadEnvironment(cmd, true)
	if err != nil {
		return err
	}
	defer env.close()

	// operator imports run with admin rights over any package
	actor := users.Actor{Role: users.RoleAdmin}
	n, err := env.services.Questions.Import(cmd.Context(), actor, packageID, questions)
	if err != nil {
		return err
	}
	env.logger.Info(fmt.Sprintf("Imported %d questions from %s", n, inputFilePath))
	return nil
}

// InitQuestionCommands registers the question bank commands
func InitQuestionCommands(rootCmd *cobra.Command) error {
	handler := &QuestionCommandHandler{}

	var importQuestionsCmd = &cobra.Command{
		Use:   "import-questions",
		Short: "Import questions from a JSON file into a package",
		RunE:  handler.ImportQuestionsCmd,
	}
	importQuestionsCmd.Flags().StringP("package-id", "", "", "Target package ID")
	importQuestionsCmd.Flags().StringP("input-file", "", "", "Path to a JSON file with the questions")
	for _, name := range []string{"package-id", "input-file"} {
		if err := importQuestionsCmd.MarkFlagRequired(name); err != nil {
			return err
		}
	}
	rootCmd.AddCommand(importQuestionsCmd)

	return nil
}
