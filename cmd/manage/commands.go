package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MAL295/Employee-Data-Management/internal/app"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/service"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "同步数据库表结构",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Bootstrap(*configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Fprintln(cmd.OutOrStdout(), "迁移完成")
			return nil
		},
	}
}

func newSeedCmd(configPath *string) *cobra.Command {
	var (
		employees  int
		reviews    int
		attendance int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "清空业务数据并生成演示数据",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Bootstrap(*configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			var req dto.SeedRequest
			flags := cmd.Flags()
			if flags.Changed("employees") {
				req.Employees = &employees
			}
			if flags.Changed("reviews") {
				req.ReviewsPerEmployee = &reviews
			}
			if flags.Changed("attendance") {
				req.AttendancePerEmployee = &attendance
			}
			if flags.Changed("seed") {
				req.RandomSeed = &seed
			}

			out := cmd.OutOrStdout()
			seedSvc := service.NewSeedService(a.Repo, a.Config.Seed, nil, a.Logger)
			opts := seedSvc.Options(&req)
			opts.OnStage = func(stage string, count int) error {
				fmt.Fprintf(out, "[%s] %d\n", stage, count)
				return nil
			}

			result, err := seedSvc.Seed(cmd.Context(), opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "完成：部门 %d，员工 %d，绩效 %d，考勤 %d（跳过重复 %d），随机种子 %d\n",
				result.Departments, result.Employees, result.PerformanceRecords,
				result.AttendanceRecords, result.DuplicateAttendanceSkipped, result.RandomSeed)
			return nil
		},
	}

	cmd.Flags().IntVar(&employees, "employees", 0, "员工总数（默认取配置）")
	cmd.Flags().IntVar(&reviews, "reviews", 0, "每名员工的绩效记录数（默认取配置）")
	cmd.Flags().IntVar(&attendance, "attendance", 0, "每名员工的考勤尝试次数（默认取配置）")
	cmd.Flags().Int64Var(&seed, "seed", 0, "随机种子，固定后结果可复现")
	return cmd
}

func newRecomputeCmd(configPath *string) *cobra.Command {
	var department string

	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "重算部门绩效汇总",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := app.Bootstrap(*configPath, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			summarySvc := service.NewSummaryService(a.Repo, a.Config.Aggregation, nil, a.Logger)

			if department != "" {
				summary, err := summarySvc.Recompute(cmd.Context(), department)
				if err != nil {
					return err
				}
				printSummary(cmd, summary)
				return nil
			}

			result, err := summarySvc.RecomputeAll(cmd.Context())
			if err != nil {
				return err
			}
			for i := range result.Summaries {
				printSummary(cmd, &result.Summaries[i])
			}
			if len(result.CreatedDepartments) > 0 {
				fmt.Fprintf(out, "已补建汇总行: %s\n", strings.Join(result.CreatedDepartments, ", "))
			}
			if len(result.UnmatchedDepartments) > 0 {
				fmt.Fprintf(out, "缺少汇总行的部门: %s\n", strings.Join(result.UnmatchedDepartments, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "只重算指定部门")
	return cmd
}

func printSummary(cmd *cobra.Command, s *dto.DepartmentSummaryResponse) {
	fmt.Fprintf(cmd.OutOrStdout(), "%-20s 员工 %-4d 平均评分 %.2f\n", s.DepartmentName, s.TotalEmployees, s.AverageRating)
}

func newCreateUserCmd(configPath *string) *cobra.Command {
	var req dto.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "创建 API 账号",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(req.Password) < 8 {
				return fmt.Errorf("密码至少 8 位")
			}
			a, err := app.Bootstrap(*configPath, true)
			if err != nil {
				return err
			}
			defer a.Close()

			authSvc := service.NewAuthService(a.Config, a.Repo, jwt.NewManager(&a.Config.Auth), nil, a.Logger)
			user, err := authSvc.CreateUser(cmd.Context(), &req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已创建账号 %s（%s）\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "用户名")
	cmd.Flags().StringVar(&req.Password, "password", "", "密码（至少 8 位）")
	cmd.Flags().StringVar(&req.Role, "role", "viewer", "角色：admin | editor | viewer")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
