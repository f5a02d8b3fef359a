package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"appealapp/src/wizard"
)

func submitCmd() *cobra.Command {
	var kindFlag string
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Walk the complaint submission wizard",
		Long: `Walk the complaint submission wizard step by step.

Enter "back" at any field prompt to return to the previous step. An empty
answer keeps the field's current value.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := signedInClient()
			if err != nil {
				return err
			}

			form := wizard.NewFormState()
			if wizard.Kind(kindFlag) == wizard.KindOrganization {
				form.SetKind(wizard.KindOrganization)
			}

			if err := runWizard(form); err != nil {
				return err
			}

			created, err := c.SubmitComplaint(context.Background(), form)
			if err != nil {
				return err
			}
			fmt.Printf("Complaint #%d submitted, status %s\n", created.ID, created.Status)
			if created.Photo != "" {
				fmt.Printf("Attachment stored at %s\n", created.Photo)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "individual", "individual or organization")
	return cmd
}

// runWizard walks the step table until the form is submittable.
func runWizard(form *wizard.FormState) error {
	total := wizard.StepCount(form.Kind())
	for {
		step := wizard.Steps(form.Kind())[form.Step()-1]
		fmt.Printf("\n-- Step %d/%d: %s --\n", form.Step(), total, step.Name)

		back, err := fillFields(form, step.Fields)
		if err != nil {
			return err
		}
		if back {
			form.Retreat()
			continue
		}

		if form.Step() == total {
			if form.CanSubmit() {
				return nil
			}
		} else if form.Advance() {
			continue
		}
		printErrors(form.Errors())
	}
}

func fillFields(form *wizard.FormState, fields []string) (back bool, err error) {
	for _, name := range fields {
		value, err := promptField(form, name)
		if err != nil {
			return false, err
		}
		if value == "back" {
			return true, nil
		}
		applyField(form, name, value)
	}
	return false, nil
}

func promptField(form *wizard.FormState, name string) (string, error) {
	switch {
	case wizard.IsConsentField(name):
		return promptLine(fmt.Sprintf("%s (y/n): ", name))
	case wizard.IsAttachmentField(name):
		return promptLine(fmt.Sprintf("%s (file path): ", name))
	default:
		current := form.Value(name)
		if current != "" {
			return promptLine(fmt.Sprintf("%s [%s]: ", name, current))
		}
		return promptLine(fmt.Sprintf("%s: ", name))
	}
}

func applyField(form *wizard.FormState, name, value string) {
	switch {
	case wizard.IsConsentField(name):
		form.SetConsent(name, strings.EqualFold(value, "y") || strings.EqualFold(value, "yes"))
	case wizard.IsAttachmentField(name):
		if value == "" {
			return
		}
		a, err := wizard.AttachmentFromFile(value)
		if err != nil {
			fmt.Println("  cannot read file:", err)
			return
		}
		form.SetAttachment(name, a)
	default:
		if value == "" {
			return
		}
		form.SetField(name, value)
	}
}

func printErrors(errs map[string]string) {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, errs[name])
	}
}
