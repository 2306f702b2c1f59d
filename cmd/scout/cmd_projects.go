package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/core/domain"
	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/pkg/logger"
)

var newProject domain.ProjectCreateRequest

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Browse and publish projects",
	RunE:  runProjectsList,
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects of the active launch",
	RunE:  runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show one project with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsShow,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Publish a project",
	RunE:  runProjectsCreate,
}

var projectsMineCmd = &cobra.Command{
	Use:   "mine",
	Short: "List the projects you published",
	RunE:  runProjectsMine,
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()

	overview, err := feed.Overview(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), overview)
	}
	if err := printProjects(cmd.OutOrStdout(), overview.Projects); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d members, %d projects\n", overview.Stats.UserCount, overview.Stats.ProjectCount)
	return nil
}

func runProjectsShow(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()
	comments := service.NewCommentFeed(a.client, a.sessions, args[0], logger.For("comments"))
	defer comments.Close()

	project, err := feed.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	list, err := comments.Fetch(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), struct {
			Project  *domain.Project  `json:"project"`
			Comments []domain.Comment `json:"comments"`
		}{project, list})
	}
	if err := printProject(cmd.OutOrStdout(), project); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return printComments(cmd.OutOrStdout(), list)
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	if _, err := a.session(); err != nil {
		return err
	}

	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()

	project, err := feed.Create(cmd.Context(), newProject)
	if err != nil {
		return err
	}
	log.Info().Str("project_id", project.ID).Msg("project published")
	return printProject(cmd.OutOrStdout(), project)
}

func runProjectsMine(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()
	sess, err := a.session()
	if err != nil {
		return err
	}

	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()

	projects, err := feed.ByUser(cmd.Context(), sess.User.ID)
	if err != nil {
		return err
	}
	return printProjects(cmd.OutOrStdout(), projects)
}

func init() {
	f := projectsCreateCmd.Flags()
	f.StringVar(&newProject.Name, "name", "", "project name")
	f.StringVar(&newProject.Description, "description", "", "one-line pitch")
	f.StringVar(&newProject.FullDescription, "full-description", "", "long description")
	f.StringArrayVar(&newProject.Images, "image", nil, "image URL (repeatable; the first is the logo)")
	f.StringArrayVar(&newProject.Creators, "creator", nil, "creator name (repeatable)")
	f.StringVar(&newProject.TelegramContact, "telegram", "", "telegram contact")
	f.StringVar(&newProject.Website, "website", "", "website URL")

	projectsCmd.AddCommand(projectsListCmd, projectsShowCmd, projectsCreateCmd, projectsMineCmd)
	rootCmd.AddCommand(projectsCmd)
}
