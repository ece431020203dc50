package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kukkaro/internal/client"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List, add, update, and delete the categories expenses and incomes are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var categoryType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories sorted by name",
		RunE: func(cmd *cobra.Command, _ []string) error {
			api := newAPIClient()

			var (
				categories []client.Category
				err        error
			)
			if categoryType != "" {
				categories, err = api.ListCategoriesByType(cmd.Context(), categoryType)
			} else {
				categories, err = api.ListCategories(cmd.Context())
			}
			if err != nil {
				return err
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), SubtleStyle.Render("No categories found. Use 'kukkaro categories add' to create one."))
				return nil
			}
			printCategories(cmd.OutOrStdout(), categories)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryType, "type", "", "only categories of this type (expense or income)")
	return cmd
}

func addCategoryCmd() *cobra.Command {
	var in client.CategoryInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = args[0]
			category, err := newAPIClient().CreateCategory(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(
				fmt.Sprintf("✓ Added %s category #%d: %s", category.Type, category.ID, categoryLabel(category))))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Type, "type", "expense", "category type (expense or income)")
	cmd.Flags().StringVar(&in.Color, "color", "#888888", "hex color such as #ff8800")
	cmd.Flags().StringVar(&in.Icon, "icon", "🏷️", "icon shown next to the name")

	return cmd
}

func editCategoryCmd() *cobra.Command {
	var name, color, icon string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename or restyle a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var patch client.CategoryPatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("color") {
				patch.Color = &color
			}
			if flags.Changed("icon") {
				patch.Icon = &icon
			}
			if patch == (client.CategoryPatch{}) {
				return errors.New("nothing to change: pass at least one of --name, --color, --icon")
			}

			category, err := newAPIClient().UpdateCategory(cmd.Context(), id, patch)
			if err != nil {
				return fmt.Errorf("failed to update category: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Updated category #%d: %s", category.ID, categoryLabel(category))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new hex color")
	cmd.Flags().StringVar(&icon, "icon", "", "new icon")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category no transaction uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := newAPIClient().DeleteCategory(cmd.Context(), id); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render(fmt.Sprintf("✓ Deleted category #%d", id)))
			return nil
		},
	}
}
